package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("product price must be a non-negative integer")
)

const (
	EventsQueue  = "catalog.events"
	EventCreated = "product_created"
	EventDeleted = "product_deleted"
)

// Product is the unit of the catalog. JSON tags match the layout of the
// products file and the payload the web client expects.
type Product struct {
	ID          int64  `json:"id" example:"1694535311181"`
	Name        string `json:"name" example:"Urban Explorer Hoodie"`
	Price       int64  `json:"price" example:"4500"`
	Description string `json:"description" example:"Classic heavyweight cotton hoodie."`
	ImageURL    string `json:"imageUrl" example:"https://placehold.co/600x600"`
}

// ProductEvent is published on every catalog mutation and consumed by the
// audit service.
type ProductEvent struct {
	EventType string    `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Price     int64     `json:"price,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
