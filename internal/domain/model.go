package domain

// SaveEntry is one line of the save journal.
type SaveEntry struct {
	Timestamp    string  `json:"timestamp"`
	DataFile     string  `json:"data_file"`
	ProductCount int     `json:"product_count"`
	TotalValue   float64 `json:"total_value"`
	CommitHash   string  `json:"commit_hash,omitempty"`
}
