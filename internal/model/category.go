package model

import "time"

// Category is a discussion topic grouping (JavaScript, Python, DevOps, ...).
//
// Categories are created only by the database bootstrap; the API serves them
// read-only. Name is UNIQUE at the storage level so a racing second bootstrap
// fails loudly instead of duplicating the catalog.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"` // display hint, e.g. "#f7df1e"
	CreatedAt   time.Time `json:"createdAt"`
}
