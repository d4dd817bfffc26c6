package model

import (
	"slices"
	"strings"
)

// Product represents a printable item in the catalogue.
// Price is denominated in the base currency.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	InStock     bool     `json:"inStock"`
}

// Clone returns a deep copy so callers never share the tag slice.
func (p Product) Clone() Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Matches reports whether the query is a case-insensitive substring of the
// name, the description or any tag. An empty query matches everything.
func (p Product) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// ProductPatch carries the fields of a partial product update.
// Nil fields are left untouched.
type ProductPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	InStock     *bool     `json:"inStock,omitempty"`
}

// Apply merges the patch into p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Tags != nil {
		p.Tags = slices.Clone(*pp.Tags)
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	if pp.InStock != nil {
		p.InStock = *pp.InStock
	}
}

// SortKey names a display ordering for product listings.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
)

// SortProducts returns a sorted copy of products. Unknown keys keep the
// catalogue order.
func SortProducts(products []Product, key SortKey) []Product {
	sorted := slices.Clone(products)
	switch key {
	case SortByName:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortByPriceLow:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return compareFloat(a.Price, b.Price)
		})
	case SortByPriceHigh:
		slices.SortStableFunc(sorted, func(a, b Product) int {
			return compareFloat(b.Price, a.Price)
		})
	}
	return sorted
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Category is an entry of the fixed category list.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
