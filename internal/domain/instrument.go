package domain

// Instrument is one tradable symbol with its current quote.
// Wire form matches the catalog.snapshot channel: {"name": "apl", "value": 101}.
type Instrument struct {
	Symbol string  `json:"name"`
	Price  float64 `json:"value"`
}

// SeedCatalog returns the fixed instrument set the exchange opens with.
func SeedCatalog() []Instrument {
	return []Instrument{
		{"apl", 101.00}, {"mst", 91.00}, {"dell", 73.00}, {"ibm", 51.00},
		{"petg", 82.00}, {"mly", 65.00}, {"max", 44.00}, {"gnt", 77.00},
		{"airm", 89.00}, {"bbt", 60.00}, {"tpx", 72.00}, {"mmh", 55.00},
		{"sunr", 68.00}, {"kct", 93.00}, {"pgg", 78.00}, {"tem", 81.00},
		{"sbc", 47.00}, {"cmn", 64.00}, {"smb", 70.00}, {"jlg", 85.00},
		{"cap", 49.00}, {"gmx", 76.00}, {"ant", 67.00}, {"bbl", 90.00},
		{"mmc", 58.00}, {"dph", 71.00}, {"szb", 83.00}, {"fsl", 52.00},
		{"pcb", 74.00}, {"sjc", 69.00}, {"sel", 87.00}, {"pwr", 63.00},
		{"klh", 80.00}, {"svm", 54.00}, {"rbx", 86.00}, {"grd", 50.00},
		{"tep", 75.00}, {"nmb", 62.00}, {"tlc", 79.00}, {"apm", 53.00},
		{"ktm", 48.00}, {"bnt", 66.00}, {"pdm", 91.00}, {"qlt", 84.00},
		{"trn", 61.00}, {"txl", 88.00}, {"mnt", 59.00}, {"kbb", 46.00},
		{"snc", 72.00}, {"gmp", 81.00}, {"npx", 73.00}, {"sln", 54.00},
		{"mbt", 67.00}, {"gkt", 92.00}, {"pld", 75.00}, {"nff", 60.00},
		{"zmx", 78.00}, {"bpc", 83.00}, {"klb", 45.00}, {"bsn", 74.00},
	}
}
