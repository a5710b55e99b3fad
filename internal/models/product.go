package models

import "time"

// Product represents a catalog product.
// Description is nullable; every other field is required on input.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255)"`
	Description *string   `json:"description"`
	Image       string    `json:"image"`
	Brand       string    `json:"brand" gorm:"type:varchar(255)"`
	Price       float64   `json:"price"`
	PriceSale   float64   `json:"price_sale"`
	Category    string    `json:"category" gorm:"type:varchar(255)"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
