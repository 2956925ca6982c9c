package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Page != DefaultPage || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestParseClampsLimit(t *testing.T) {
	p := paramsFor(t, "page=3&limit=500")
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
	if p.Offset != 2*MaxLimit {
		t.Fatalf("expected offset %d, got %d", 2*MaxLimit, p.Offset)
	}
}

func TestParseRejectsNonPositive(t *testing.T) {
	p := paramsFor(t, "page=-1&limit=0")
	if p.Page != DefaultPage || p.Limit != DefaultLimit {
		t.Fatalf("expected defaults for non-positive values, got %+v", p)
	}
}
