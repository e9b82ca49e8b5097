package builder

import (
	"io"

	"github.com/joeydtaylor/tensilerig/pkg/internal/codec"
)

type Event = codec.Event

type EventEncoder = codec.EventEncoder

type EventEncoderOption = codec.EventEncoderOption

type EventDecoder = codec.EventDecoder

// NewEventEncoder writes result events as JSON lines. Attach it to a rig's
// sensor to stream a session.
func NewEventEncoder(w io.Writer, options ...EventEncoderOption) *EventEncoder {
	return codec.NewEventEncoder(w, options...)
}

// EventWithPointStride emits only every nth point event.
func EventWithPointStride(n int) EventEncoderOption {
	return codec.WithPointStride(n)
}

func NewEventDecoder(r io.Reader) *EventDecoder {
	return codec.NewEventDecoder(r)
}

// EncodeJSON writes v as JSON, indented when indent is set.
func EncodeJSON[T any](w io.Writer, v T, indent bool) error {
	if indent {
		return codec.NewIndentedJSONEncoder[T]().Encode(w, v)
	}
	return codec.NewJSONEncoder[T]().Encode(w, v)
}
