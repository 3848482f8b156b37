package models

// StoreStats is a read-only aggregate over the three persisted
// collections.
type StoreStats struct {
	Documents int `json:"documents"`
	Folders   int `json:"folders"`
	Settings  int `json:"settings"`
}
