// Package models defines the catalog's data model: products, users and
// sessions, plus the patch types used for partial updates.
package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidProduct = errors.New("invalid product")

// Product is a sellable catalog item. ID is an opaque decimal string assigned
// by the product store at creation time and never changes afterwards.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Vendor      string  `json:"vendor"`
	Image       string  `json:"image"`
}

// ProductDraft carries every Product field except the ID, which the store
// assigns on Add.
type ProductDraft struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Vendor      string
	Image       string
}

// Validate checks the draft against the catalog invariants.
func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidProduct)
	}
	if d.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if d.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	if strings.TrimSpace(d.Category) == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidProduct)
	}
	if strings.TrimSpace(d.Vendor) == "" {
		return fmt.Errorf("%w: vendor must not be empty", ErrInvalidProduct)
	}
	return nil
}

// Product materializes the draft with the given id.
func (d ProductDraft) Product(id string) Product {
	return Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Category:    d.Category,
		Vendor:      d.Vendor,
		Image:       d.Image,
	}
}

// ProductPatch is a shallow partial update: nil fields keep their current
// value. The ID is never part of a patch.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	Vendor      *string
	Image       *string
}

// Apply merges the patch over base and returns the result. base.ID is
// always retained.
func (p ProductPatch) Apply(base Product) Product {
	if p.Name != nil {
		base.Name = *p.Name
	}
	if p.Description != nil {
		base.Description = *p.Description
	}
	if p.Price != nil {
		base.Price = *p.Price
	}
	if p.Stock != nil {
		base.Stock = *p.Stock
	}
	if p.Category != nil {
		base.Category = *p.Category
	}
	if p.Vendor != nil {
		base.Vendor = *p.Vendor
	}
	if p.Image != nil {
		base.Image = *p.Image
	}
	return base
}
