package codec

import (
	"encoding/json"
	"io"
)

// JSONEncoder encodes a generic type into JSON.
type JSONEncoder[T any] struct {
	Indent string
}

// JSONDecoder decodes JSON into a generic type.
type JSONDecoder[T any] struct{}

func NewJSONDecoder[T any]() *JSONDecoder[T] {
	return &JSONDecoder[T]{}
}

func NewJSONEncoder[T any]() *JSONEncoder[T] {
	return &JSONEncoder[T]{}
}

// NewIndentedJSONEncoder returns an encoder for human-readable output.
func NewIndentedJSONEncoder[T any]() *JSONEncoder[T] {
	return &JSONEncoder[T]{Indent: "  "}
}

// Decode reads from an io.Reader, decodes the JSON data, and stores the result in a value of type T.
func (d *JSONDecoder[T]) Decode(r io.Reader) (T, error) {
	var t T
	err := json.NewDecoder(r).Decode(&t)
	return t, err
}

// DecodeSlice reads a JSON array of T.
func (d *JSONDecoder[T]) DecodeSlice(r io.Reader) ([]T, error) {
	var slice []T
	err := json.NewDecoder(r).Decode(&slice)
	return slice, err
}

// Encode writes the JSON encoding of elem to an io.Writer.
func (e *JSONEncoder[T]) Encode(w io.Writer, elem T) error {
	return e.encoder(w).Encode(elem)
}

// EncodeSlice writes the JSON encoding of a slice of elems to an io.Writer.
func (e *JSONEncoder[T]) EncodeSlice(w io.Writer, elems []T) error {
	return e.encoder(w).Encode(elems)
}

func (e *JSONEncoder[T]) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if e.Indent != "" {
		enc.SetIndent("", e.Indent)
	}
	return enc
}
