package model

import "time"

// Export records one generated flyer PDF archived in object storage.
type Export struct {
	ID          string    `json:"id"`
	Region      Region    `json:"region"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	StoreCount  int       `json:"store_count"`
	CreatedAt   time.Time `json:"created_at"`
}
