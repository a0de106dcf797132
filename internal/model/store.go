package model

import "time"

// Store represents one retail location of the network.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, rendering) without coupling to persistence.
type Store struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Region    Region    `json:"region"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	WhatsApp  string    `json:"whatsapp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreFields carries the mutable fields of a store for create/update requests.
// Phone may be left empty; the flyer renderer substitutes the national 0800
// number at render time so the stored value stays empty.
type StoreFields struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
}

// StoreStats aggregates network-wide counts shown on the dashboard.
type StoreStats struct {
	Total    int            `json:"total"`
	ByRegion map[Region]int `json:"by_region"`
}
