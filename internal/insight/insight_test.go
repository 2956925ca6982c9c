package insight

import "testing"

func fp(v float64) *float64 { return &v }

func TestCalculateEmptyList(t *testing.T) {
	res := Calculate(nil)

	if res.Summary != "No products provided for analysis." {
		t.Fatalf("unexpected summary: %q", res.Summary)
	}
	if res.Stats.Count != 0 {
		t.Fatalf("expected count 0, got %d", res.Stats.Count)
	}
	if res.Stats.AvgPrice != nil {
		t.Fatalf("expected nil avgPrice, got %v", *res.Stats.AvgPrice)
	}
	if res.Stats.AvgRating != nil {
		t.Fatalf("expected nil avgRating, got %v", *res.Stats.AvgRating)
	}
	if res.Stats.InStock != 0 {
		t.Fatalf("expected inStock 0, got %d", res.Stats.InStock)
	}
}

func TestCalculateSingleProduct(t *testing.T) {
	res := Calculate([]ProductInput{
		{Name: "A", Price: 10, Rating: fp(4), Stock: 5},
	})

	if res.Stats.Count != 1 {
		t.Fatalf("expected count 1, got %d", res.Stats.Count)
	}
	if res.Stats.AvgPrice == nil || *res.Stats.AvgPrice != 10 {
		t.Fatalf("expected avgPrice 10, got %v", res.Stats.AvgPrice)
	}
	if res.Stats.AvgRating == nil || *res.Stats.AvgRating != 4 {
		t.Fatalf("expected avgRating 4, got %v", res.Stats.AvgRating)
	}
	if res.Stats.InStock != 1 {
		t.Fatalf("expected inStock 1, got %d", res.Stats.InStock)
	}

	want := "Analyzed 1 product. Average price is 10.00. Average rating is 4.0. 1 item is currently in stock."
	if res.Summary != want {
		t.Fatalf("summary mismatch:\n got: %q\nwant: %q", res.Summary, want)
	}
}

func TestCalculatePartialRatings(t *testing.T) {
	res := Calculate([]ProductInput{
		{Name: "A", Price: 10, Rating: fp(5), Stock: 1},
		{Name: "B", Price: 20, Rating: nil, Stock: 0},
	})

	if *res.Stats.AvgPrice != 15 {
		t.Fatalf("expected avgPrice 15, got %v", *res.Stats.AvgPrice)
	}
	// Only the rated product contributes to the average.
	if *res.Stats.AvgRating != 5 {
		t.Fatalf("expected avgRating 5, got %v", *res.Stats.AvgRating)
	}
	if res.Stats.InStock != 1 {
		t.Fatalf("expected inStock 1, got %d", res.Stats.InStock)
	}

	want := "Analyzed 2 products. Average price is 15.00. Average rating is 5.0. 1 item is currently in stock, 1 out of stock."
	if res.Summary != want {
		t.Fatalf("summary mismatch:\n got: %q\nwant: %q", res.Summary, want)
	}
}

func TestCalculateNoRatings(t *testing.T) {
	res := Calculate([]ProductInput{
		{Name: "A", Price: 10, Rating: nil, Stock: 3},
		{Name: "B", Price: 30, Rating: nil, Stock: 2},
	})

	if res.Stats.AvgRating != nil {
		t.Fatalf("expected nil avgRating, got %v", *res.Stats.AvgRating)
	}

	want := "Analyzed 2 products. Average price is 20.00. No rating data available. 2 items are currently in stock."
	if res.Summary != want {
		t.Fatalf("summary mismatch:\n got: %q\nwant: %q", res.Summary, want)
	}
}

func TestCalculateStockPartition(t *testing.T) {
	products := []ProductInput{
		{Name: "A", Price: 1, Rating: nil, Stock: 0},
		{Name: "B", Price: 2, Rating: nil, Stock: -1},
		{Name: "C", Price: 3, Rating: nil, Stock: 1},
		{Name: "D", Price: 4, Rating: nil, Stock: 7},
	}
	res := Calculate(products)

	// Only strictly positive stock counts as in stock.
	if res.Stats.InStock != 2 {
		t.Fatalf("expected inStock 2, got %d", res.Stats.InStock)
	}
	outOfStock := res.Stats.Count - res.Stats.InStock
	if res.Stats.InStock+outOfStock != len(products) {
		t.Fatalf("inStock + outOfStock should equal count")
	}
}

func TestCalculateRoundsHalfAwayFromZero(t *testing.T) {
	// Average price 0.125 is exactly representable, so this exercises the
	// documented half-away-from-zero rounding: 0.125 -> 0.13.
	res := Calculate([]ProductInput{
		{Name: "A", Price: 0.12, Rating: fp(4.25), Stock: 1},
		{Name: "B", Price: 0.13, Rating: fp(4.25), Stock: 1},
	})

	if *res.Stats.AvgPrice != 0.13 {
		t.Fatalf("expected avgPrice 0.13, got %v", *res.Stats.AvgPrice)
	}
	if *res.Stats.AvgRating != 4.25 {
		t.Fatalf("expected avgRating 4.25, got %v", *res.Stats.AvgRating)
	}

	// The summary re-formats the rating to one decimal: 4.25 -> 4.3.
	want := "Analyzed 2 products. Average price is 0.13. Average rating is 4.3. 2 items are currently in stock."
	if res.Summary != want {
		t.Fatalf("summary mismatch:\n got: %q\nwant: %q", res.Summary, want)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	products := []ProductInput{
		{Name: "A", Price: 9.99, Rating: fp(3), Stock: 2},
		{Name: "B", Price: 5.01, Rating: nil, Stock: 0},
	}

	first := Calculate(products)
	second := Calculate(products)

	if first.Summary != second.Summary {
		t.Fatalf("summaries differ between identical calls")
	}
	if *first.Stats.AvgPrice != *second.Stats.AvgPrice || first.Stats.InStock != second.Stats.InStock {
		t.Fatalf("stats differ between identical calls")
	}
}
