package models

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedData []byte

// seedRecord mirrors the bundled dataset's shape. The legacy field name
// "vendeurs" is renamed to Vendor when the records are mapped into Products.
type seedRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Vendeurs    string  `json:"vendeurs"`
	Image       string  `json:"image"`
}

// SeedProducts returns the bundled initial catalog, normalized to the
// canonical Product shape. It is consumed only on first run, before any
// collection has been persisted.
func SeedProducts() ([]Product, error) {
	var records []seedRecord
	if err := json.Unmarshal(seedData, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	products := make([]Product, len(records))
	for i, r := range records {
		products[i] = Product{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Stock:       r.Stock,
			Category:    r.Category,
			Vendor:      r.Vendeurs,
			Image:       r.Image,
		}
	}
	return products, nil
}
