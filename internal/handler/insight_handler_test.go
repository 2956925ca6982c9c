package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupInsightEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewInsightEngine()
}

func postInsights(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/insights", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

type insightResp struct {
	Summary string `json:"summary"`
	Stats   struct {
		Count     int      `json:"count"`
		AvgPrice  *float64 `json:"avgPrice"`
		AvgRating *float64 `json:"avgRating"`
		InStock   int      `json:"inStock"`
	} `json:"stats"`
}

func TestHealthEndpoint(t *testing.T) {
	engine := setupInsightEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("health body decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", body["status"])
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	engine := setupInsightEngine(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodDelete, "/insights"},
		{http.MethodPost, "/health/extra"},
	} {
		req := httptest.NewRequest(probe.method, probe.path, nil)
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", probe.method, probe.path, rr.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("404 body decode: %v", err)
		}
		if body["error"] != "Not found" {
			t.Fatalf("expected Not found body, got %q", body["error"])
		}
	}
}

func TestAnalyzeHappyPath(t *testing.T) {
	engine := setupInsightEngine(t)

	rr := postInsights(t, engine, `{"products":[
		{"name":"Widget","price":10,"rating":5,"stock":1},
		{"name":"Gadget","price":20,"rating":null,"stock":0}
	]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var res insightResp
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("response decode: %v", err)
	}

	if res.Stats.Count != 2 {
		t.Fatalf("expected count 2, got %d", res.Stats.Count)
	}
	if res.Stats.AvgPrice == nil || *res.Stats.AvgPrice != 15 {
		t.Fatalf("expected avgPrice 15, got %v", res.Stats.AvgPrice)
	}
	if res.Stats.AvgRating == nil || *res.Stats.AvgRating != 5 {
		t.Fatalf("expected avgRating 5, got %v", res.Stats.AvgRating)
	}
	if res.Stats.InStock != 1 {
		t.Fatalf("expected inStock 1, got %d", res.Stats.InStock)
	}
	if !strings.HasSuffix(res.Summary, "1 item is currently in stock, 1 out of stock.") {
		t.Fatalf("unexpected summary tail: %q", res.Summary)
	}
}

func TestAnalyzeEmptyList(t *testing.T) {
	engine := setupInsightEngine(t)

	rr := postInsights(t, engine, `{"products":[]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var res insightResp
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("response decode: %v", err)
	}
	if res.Summary != "No products provided for analysis." {
		t.Fatalf("unexpected summary: %q", res.Summary)
	}
	if res.Stats.Count != 0 || res.Stats.AvgPrice != nil || res.Stats.AvgRating != nil || res.Stats.InStock != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
}

func TestAnalyzeMalformedBodyReturns400(t *testing.T) {
	engine := setupInsightEngine(t)

	// "products" is a string, not an array: must be a 400, never a 500.
	rr := postInsights(t, engine, `{"products":"not-a-list"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body decode: %v", err)
	}
	if body["error"] != `Invalid request body. "products" must be an array.` {
		t.Fatalf("unexpected error: %q", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Fatalf("malformed body error must not carry details")
	}
}

func TestAnalyzeInvalidElementReturns400WithIndices(t *testing.T) {
	engine := setupInsightEngine(t)

	rr := postInsights(t, engine, `{"products":[
		{"name":"OK","price":1,"rating":null,"stock":1},
		{"name":"Broken","price":"two","rating":null,"stock":1}
	]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body decode: %v", err)
	}
	if body["error"] != "Invalid product data" {
		t.Fatalf("unexpected error: %q", body["error"])
	}
	if !strings.Contains(body["details"], "indices 1") {
		t.Fatalf("expected index 1 in details, got %q", body["details"])
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	engine := setupInsightEngine(t)
	body := `{"products":[{"name":"A","price":9.99,"rating":3,"stock":2},{"name":"B","price":5.01,"rating":null,"stock":0}]}`

	first := postInsights(t, engine, body)
	second := postInsights(t, engine, body)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatalf("identical requests must produce byte-identical responses:\n%s\n%s",
			first.Body.String(), second.Body.String())
	}
}
