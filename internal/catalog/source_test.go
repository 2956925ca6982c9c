package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept application/json, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name":"A Light in the Attic","price":"51.77","rating":3,"stock":1,"image_url":"http://img/a.jpg","source_url":"http://src/a"},
			{"name":"Sharp Objects","price":"47.82","rating":4,"stock":0,"image_url":"http://img/b.jpg","source_url":"http://src/b"}
		]`))
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL)
	products, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected fetch error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "A Light in the Attic" || products[0].Price != "51.77" {
		t.Fatalf("first product decoded wrong: %+v", products[0])
	}
	if products[1].Stock != 0 || products[1].Rating != 4 {
		t.Fatalf("second product decoded wrong: %+v", products[1])
	}
}

func TestHTTPSourceFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL)
	if _, err := source.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 feed response")
	}
}

func TestHTTPSourceFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	source := NewHTTPSource(srv.URL)
	if _, err := source.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for non-array feed payload")
	}
}

func TestSampleSourceFetch(t *testing.T) {
	products, err := NewSampleSource().Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("sample catalog must not be empty")
	}
	for _, p := range products {
		if p.Name == "" || p.Price == "" {
			t.Fatalf("sample product missing fields: %+v", p)
		}
	}
}
