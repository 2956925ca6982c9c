package insight

import (
	"math"
	"strconv"
	"strings"
)

// ProductInput is one product record as received by the insights endpoint.
// Rating nil means no rating was recorded for the product.
type ProductInput struct {
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Rating *float64 `json:"rating"`
	Stock  float64  `json:"stock"`
}

// Stats holds the aggregate values computed over one product list.
// AvgPrice and AvgRating are nil when the averaging set is empty.
type Stats struct {
	Count     int      `json:"count"`
	AvgPrice  *float64 `json:"avgPrice"`
	AvgRating *float64 `json:"avgRating"`
	InStock   int      `json:"inStock"`
}

// Response pairs the generated summary sentence with its statistics.
type Response struct {
	Summary string `json:"summary"`
	Stats   Stats  `json:"stats"`
}

const emptySummary = "No products provided for analysis."

// Calculate computes insight statistics and a natural-language summary for
// the given products. It is a total function: any well-typed input produces
// a response, and identical inputs produce identical responses.
func Calculate(products []ProductInput) Response {
	if len(products) == 0 {
		return Response{
			Summary: emptySummary,
			Stats:   Stats{Count: 0, AvgPrice: nil, AvgRating: nil, InStock: 0},
		}
	}

	count := len(products)

	var totalPrice float64
	for _, p := range products {
		totalPrice += p.Price
	}
	avgPrice := totalPrice / float64(count)

	// Average rating only over products that actually carry one.
	var totalRating float64
	rated := 0
	for _, p := range products {
		if p.Rating != nil {
			totalRating += *p.Rating
			rated++
		}
	}
	var avgRating *float64
	if rated > 0 {
		r := round(totalRating/float64(rated), 2)
		avgRating = &r
	}

	inStock := 0
	for _, p := range products {
		if p.Stock > 0 {
			inStock++
		}
	}

	price := round(avgPrice, 2)
	stats := Stats{
		Count:     count,
		AvgPrice:  &price,
		AvgRating: avgRating,
		InStock:   inStock,
	}

	return Response{
		Summary: buildSummary(stats),
		Stats:   stats,
	}
}

// buildSummary assembles the summary sentence from already-rounded stats,
// clause by clause in a fixed order.
func buildSummary(stats Stats) string {
	outOfStock := stats.Count - stats.InStock

	var b strings.Builder

	b.WriteString("Analyzed " + strconv.Itoa(stats.Count) + " product")
	if stats.Count != 1 {
		b.WriteString("s")
	}
	b.WriteString(".")

	if stats.AvgPrice != nil {
		b.WriteString(" Average price is " + formatDecimal(*stats.AvgPrice, 2) + ".")
	} else {
		b.WriteString(" No price data available.")
	}

	if stats.AvgRating != nil {
		b.WriteString(" Average rating is " + formatDecimal(*stats.AvgRating, 1) + ".")
	} else {
		b.WriteString(" No rating data available.")
	}

	b.WriteString(" " + strconv.Itoa(stats.InStock) + " item")
	if stats.InStock != 1 {
		b.WriteString("s are")
	} else {
		b.WriteString(" is")
	}
	b.WriteString(" currently in stock")

	if outOfStock > 0 {
		b.WriteString(", " + strconv.Itoa(outOfStock) + " out of stock.")
	} else {
		b.WriteString(".")
	}

	return b.String()
}

// round rounds half away from zero to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// formatDecimal renders v with exactly the given number of decimal places,
// rounding half away from zero (fmt's %.1f would round half to even).
func formatDecimal(v float64, places int) string {
	return strconv.FormatFloat(round(v, places), 'f', places, 64)
}
