// Package model defines shared data structures.
package model

// Order selects the sort direction for grouped counts.
type Order int

const (
	// Descending sorts the most frequent category first.
	Descending Order = iota
	// Ascending sorts the least frequent category first.
	Ascending
)

// String returns the config spelling of the order.
func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// CategoryWeight pairs a category label with its relative frequency.
type CategoryWeight struct {
	Name   string
	Weight float64
}

// GroupCount is the number of occurrences of one category.
type GroupCount struct {
	Name  string
	Count int
}

// Config defines chart run settings.
type Config struct {
	Samples     int
	Seed        int64
	Order       Order
	Weights     string
	Out         string
	Format      string
	Width       int
	Height      int
	Rows        int
	Title       string
	Interactive bool
	Color       bool
}
