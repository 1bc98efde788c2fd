// internal/models/category.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category tags metrics, goals and tasks with one of the three business areas
// the health score is broken down by.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryRevenue
	CategoryOperations
	CategoryCustomer
)

// Categories lists the recognized categories in breakdown order.
var Categories = []Category{CategoryRevenue, CategoryOperations, CategoryCustomer}

func (c Category) String() string {
	switch c {
	case CategoryRevenue:
		return "revenue"
	case CategoryOperations:
		return "operations"
	case CategoryCustomer:
		return "customer"
	default:
		return "general"
	}
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	return c == CategoryRevenue || c == CategoryOperations || c == CategoryCustomer
}

// ParseCategory maps a raw category string onto a Category. The second return
// value is false for anything that is not recognized.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "revenue", "sales", "finance":
		return CategoryRevenue, true
	case "operations", "ops":
		return CategoryOperations, true
	case "customer", "customers":
		return CategoryCustomer, true
	default:
		return CategoryUnknown, false
	}
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts any string; unrecognized values decode to
// CategoryUnknown instead of failing so upstream data drift never breaks a job.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	*c, _ = ParseCategory(raw)
	return nil
}
