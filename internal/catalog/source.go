package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SourceProduct is one product record as published by the catalog feed.
type SourceProduct struct {
	Name      string `json:"name"`
	Price     string `json:"price"` // decimal string, e.g. "51.77"
	Rating    int    `json:"rating"`
	Stock     int    `json:"stock"`
	ImageURL  string `json:"image_url"`
	SourceURL string `json:"source_url"`
}

// Source fetches product records from the upstream catalog feed.
type Source interface {
	Fetch(ctx context.Context) ([]SourceProduct, error)
}

type httpSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource returns a Source reading a JSON product feed from url.
func NewHTTPSource(url string) Source {
	return &httpSource{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *httpSource) Fetch(ctx context.Context) ([]SourceProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var products []SourceProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog feed: %w", err)
	}

	return products, nil
}

type sampleSource struct{}

// NewSampleSource returns a Source serving a small built-in catalog. It is
// used when no CATALOG_SOURCE_URL is configured, so the sync job stays
// runnable in local development.
func NewSampleSource() Source {
	return sampleSource{}
}

func (sampleSource) Fetch(ctx context.Context) ([]SourceProduct, error) {
	return []SourceProduct{
		{Name: "A Light in the Attic", Price: "51.77", Rating: 3, Stock: 1, ImageURL: "https://books.toscrape.com/media/cache/2c/da/2cdad67c44b002e7ead0cc35693c0e8b.jpg", SourceURL: "https://books.toscrape.com/catalogue/a-light-in-the-attic_1000/index.html"},
		{Name: "Tipping the Velvet", Price: "53.74", Rating: 1, Stock: 1, ImageURL: "https://books.toscrape.com/media/cache/26/0c/260c6ae16bce31c8f8c95daddd9f4a1c.jpg", SourceURL: "https://books.toscrape.com/catalogue/tipping-the-velvet_999/index.html"},
		{Name: "Soumission", Price: "50.10", Rating: 1, Stock: 1, ImageURL: "https://books.toscrape.com/media/cache/3e/ef/3eef99c9d9adef34639f510662022830.jpg", SourceURL: "https://books.toscrape.com/catalogue/soumission_998/index.html"},
		{Name: "Sharp Objects", Price: "47.82", Rating: 4, Stock: 0, ImageURL: "https://books.toscrape.com/media/cache/32/51/3251cf3a3412f53f339e42cac2134093.jpg", SourceURL: "https://books.toscrape.com/catalogue/sharp-objects_997/index.html"},
		{Name: "Sapiens: A Brief History of Humankind", Price: "54.23", Rating: 5, Stock: 1, ImageURL: "https://books.toscrape.com/media/cache/be/a5/bea5697f2534a2f86a3ef27b5a8c12a6.jpg", SourceURL: "https://books.toscrape.com/catalogue/sapiens-a-brief-history-of-humankind_996/index.html"},
	}, nil
}
