package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ID is an opaque product or variant identifier. Numeric and string JSON
// values are both accepted and kept in their literal form.
type ID string

// String returns the identifier as written by the catalog
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts either a JSON string or a JSON number
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// ProductType is the catalog type of a product
type ProductType string

const (
	ProductTypeSimple   ProductType = "simple"
	ProductTypeVariable ProductType = "variable"
	ProductTypeExternal ProductType = "external"
	ProductTypeOther    ProductType = "other"
)

// Product is a read-only snapshot of a catalog product
type Product struct {
	ID          ID          `json:"id"`
	Slug        string      `json:"slug"`
	ExistingSKU string      `json:"existingSku"`
	Type        ProductType `json:"type"`
	// Variants is nil when the snapshot carries no variants collection at all.
	Variants []Variant `json:"variants"`
}

// Variant is one variation of a variable product
type Variant struct {
	ID         ID         `json:"id"`
	Attributes Attributes `json:"attributes"`
	// Status is informational only. Every variant takes part in generation
	// whatever its publish state.
	Status string `json:"status,omitempty"`
}

// Attribute is a single name/value pair of a variant
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attributes keeps variant attributes in the order they were supplied
type Attributes []Attribute

// IsVariable reports whether variant SKUs apply to the product
func (p Product) IsVariable() bool {
	return p.Type == ProductTypeVariable
}

// UnmarshalJSON accepts an object, whose key order is preserved, or an
// array of {"name","value"} pairs.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var list []Attribute
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("failed to unmarshal attribute list: %w", err)
		}
		*a = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("attributes must be an object or an array")
	}

	attrs := make(Attributes, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = attrs
	return nil
}

// MarshalJSON writes the attributes as an object in slice order
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
