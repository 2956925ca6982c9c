package insight

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Validation messages exposed on the wire. The field list in
// detailSuffix tells the caller how to fix every rejected element at once.
const (
	msgBodyNotObject   = `Invalid request body. Expected an object with a "products" array.`
	msgProductsNotList = `Invalid request body. "products" must be an array.`
	msgInvalidProducts = "Invalid product data"
	detailSuffix       = " are invalid. Each product must have: name (string), price (number), rating (number | null), stock (number)."
)

// ValidationError reports why a request body was rejected. Details is empty
// for a malformed body and lists the failing element indices otherwise.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// DecodeRequest checks an insights request body against the expected shape
// and returns the typed product list. The shape check is dynamic on purpose:
// the deserializer alone cannot distinguish a missing rating from an explicit
// null, nor report every failing element index.
func DecodeRequest(body []byte) ([]ProductInput, *ValidationError) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, &ValidationError{Message: msgBodyNotObject}
	}

	raw, ok := payload["products"]
	if !ok {
		return nil, &ValidationError{Message: msgProductsNotList}
	}

	var field any
	if err := json.Unmarshal(raw, &field); err != nil {
		return nil, &ValidationError{Message: msgProductsNotList}
	}
	elements, ok := field.([]any)
	if !ok {
		return nil, &ValidationError{Message: msgProductsNotList}
	}

	products := make([]ProductInput, 0, len(elements))
	var invalid []int
	for i, el := range elements {
		p, ok := decodeProduct(el)
		if !ok {
			invalid = append(invalid, i)
			continue
		}
		products = append(products, p)
	}

	if len(invalid) > 0 {
		return nil, &ValidationError{
			Message: msgInvalidProducts,
			Details: "Products at indices " + joinIndices(invalid) + detailSuffix,
		}
	}

	return products, nil
}

// decodeProduct checks a single decoded JSON value for the product shape:
// name (string), price (number), rating (number or null, key required),
// stock (number). Numeric ranges are deliberately not enforced.
func decodeProduct(el any) (ProductInput, bool) {
	obj, ok := el.(map[string]any)
	if !ok {
		return ProductInput{}, false
	}

	name, ok := obj["name"].(string)
	if !ok {
		return ProductInput{}, false
	}

	price, ok := obj["price"].(float64)
	if !ok {
		return ProductInput{}, false
	}

	ratingValue, present := obj["rating"]
	if !present {
		return ProductInput{}, false
	}
	var rating *float64
	if ratingValue != nil {
		r, ok := ratingValue.(float64)
		if !ok {
			return ProductInput{}, false
		}
		rating = &r
	}

	stock, ok := obj["stock"].(float64)
	if !ok {
		return ProductInput{}, false
	}

	return ProductInput{Name: name, Price: price, Rating: rating, Stock: stock}, true
}

func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}
