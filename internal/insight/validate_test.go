package insight

import (
	"strings"
	"testing"
)

func TestDecodeRequestValidBody(t *testing.T) {
	body := `{"products":[{"name":"A","price":10.5,"rating":4,"stock":2},{"name":"B","price":3,"rating":null,"stock":0}]}`

	products, verr := DecodeRequest([]byte(body))
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "A" || products[0].Price != 10.5 || products[0].Stock != 2 {
		t.Fatalf("first product decoded wrong: %+v", products[0])
	}
	if products[0].Rating == nil || *products[0].Rating != 4 {
		t.Fatalf("expected rating 4, got %v", products[0].Rating)
	}
	if products[1].Rating != nil {
		t.Fatalf("expected nil rating for explicit null, got %v", *products[1].Rating)
	}
}

func TestDecodeRequestEmptyArrayIsValid(t *testing.T) {
	products, verr := DecodeRequest([]byte(`{"products":[]}`))
	if verr != nil {
		t.Fatalf("empty products array must be accepted, got %v", verr)
	}
	if len(products) != 0 {
		t.Fatalf("expected 0 products, got %d", len(products))
	}
}

func TestDecodeRequestMalformedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"null body", `null`},
		{"string body", `"products"`},
		{"empty body", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, verr := DecodeRequest([]byte(tc.body))
			if verr == nil {
				t.Fatalf("expected validation error")
			}
			if verr.Message != `Invalid request body. Expected an object with a "products" array.` {
				t.Fatalf("unexpected message: %q", verr.Message)
			}
			if verr.Details != "" {
				t.Fatalf("malformed body must not carry details, got %q", verr.Details)
			}
		})
	}
}

func TestDecodeRequestProductsNotArray(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"string field", `{"products":"nope"}`},
		{"object field", `{"products":{"name":"A"}}`},
		{"null field", `{"products":null}`},
		{"number field", `{"products":5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, verr := DecodeRequest([]byte(tc.body))
			if verr == nil {
				t.Fatalf("expected validation error")
			}
			if verr.Message != `Invalid request body. "products" must be an array.` {
				t.Fatalf("unexpected message: %q", verr.Message)
			}
		})
	}
}

func TestDecodeRequestReportsEveryInvalidIndex(t *testing.T) {
	// Indices 1 and 3 are broken; valid neighbours must not mask them.
	body := `{"products":[
		{"name":"A","price":1,"rating":null,"stock":1},
		{"name":"B","price":"free","rating":null,"stock":1},
		{"name":"C","price":3,"rating":2,"stock":1},
		{"name":7,"price":4,"rating":null,"stock":1}
	]}`

	_, verr := DecodeRequest([]byte(body))
	if verr == nil {
		t.Fatalf("expected validation error")
	}
	if verr.Message != "Invalid product data" {
		t.Fatalf("unexpected message: %q", verr.Message)
	}
	if !strings.HasPrefix(verr.Details, "Products at indices 1, 3 are invalid.") {
		t.Fatalf("unexpected details: %q", verr.Details)
	}
}

func TestDecodeRequestFieldShapes(t *testing.T) {
	cases := []struct {
		name    string
		element string
		valid   bool
	}{
		{"missing rating key", `{"name":"A","price":1,"stock":1}`, false},
		{"rating string", `{"name":"A","price":1,"rating":"good","stock":1}`, false},
		{"missing stock", `{"name":"A","price":1,"rating":null}`, false},
		{"stock string", `{"name":"A","price":1,"rating":null,"stock":"many"}`, false},
		{"missing name", `{"price":1,"rating":null,"stock":1}`, false},
		{"missing price", `{"name":"A","rating":null,"stock":1}`, false},
		{"element not object", `42`, false},
		{"element array", `[1]`, false},
		{"negative price accepted", `{"name":"A","price":-5,"rating":null,"stock":1}`, true},
		{"out of range rating accepted", `{"name":"A","price":1,"rating":99,"stock":1}`, true},
		{"fractional stock accepted", `{"name":"A","price":1,"rating":null,"stock":1.5}`, true},
		{"extra fields ignored", `{"name":"A","price":1,"rating":null,"stock":1,"color":"red"}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"products":[` + tc.element + `]}`
			_, verr := DecodeRequest([]byte(body))
			if tc.valid && verr != nil {
				t.Fatalf("expected element to be accepted, got %v", verr)
			}
			if !tc.valid {
				if verr == nil {
					t.Fatalf("expected element to be rejected")
				}
				if !strings.Contains(verr.Details, "indices 0") {
					t.Fatalf("expected index 0 in details, got %q", verr.Details)
				}
			}
		})
	}
}
