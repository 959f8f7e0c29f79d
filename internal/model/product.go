// Package model defines the data structures used throughout the application.
//
// Struct tags follow the column names, so a Product serializes to JSON with
// the same keys as the products table (rating_rate, rating_count, ...).
package model

// Product is one catalog entry.
//
// NULLABLE COLUMNS:
// description, image, category and the two rating columns may be NULL.
// Pointer fields let database/sql scan NULL into nil, and encoding/json
// writes nil as null, so "absent" survives the round trip unchanged.
type Product struct {
	ID          int64    `json:"id"           db:"id"`
	Title       string   `json:"title"        db:"title"`
	Description *string  `json:"description"  db:"description"`
	Price       float64  `json:"price"        db:"price"`
	Image       *string  `json:"image"        db:"image"`
	Category    *string  `json:"category"     db:"category"`
	RatingRate  *float64 `json:"rating_rate"  db:"rating_rate"`
	RatingCount *int64   `json:"rating_count" db:"rating_count"`
}
