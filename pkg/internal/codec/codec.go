// Package codec serializes rig results. JSON values go through the generic
// encoders; the live result-event stream is written as JSON lines.
package codec

import (
	"io"
)

// Decoder reads one value of type T.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder writes one value of type T.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}
