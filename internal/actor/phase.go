package actor

import (
	"time"

	"marketsim/internal/bus"
)

// Phase is one state of the round protocol. Both actor kinds walk the
// same cycle each round: the exchange publishes the snapshot during
// Publishing while a broker spends that phase receiving it.
type Phase string

const (
	Publishing      Phase = "PUBLISHING"
	IngestingOrders Phase = "INGESTING_ORDERS"
	IngestingTrend  Phase = "INGESTING_TREND"
	Idle            Phase = "IDLE"
	Terminated      Phase = "TERMINATED"
)

// DefaultTimeout bounds every blocking receive in a round phase.
const DefaultTimeout = 5 * time.Second

// drain pulls messages from sub until one receive times out, handing each
// payload to handle. It returns how many payloads handle accepted, which
// is the phase's activity count; malformed payloads are dropped by the
// handler and do not count as activity.
func drain(sub bus.Subscription, timeout time.Duration, handle func([]byte) bool) int {
	n := 0
	for {
		payload, ok := sub.Receive(timeout)
		if !ok {
			return n
		}
		if handle(payload) {
			n++
		}
	}
}
