package codec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// EventDecoder reads a JSON-lines event stream back. Blank lines are skipped.
type EventDecoder struct {
	scanner *bufio.Scanner
	line    int
}

func NewEventDecoder(r io.Reader) *EventDecoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &EventDecoder{scanner: s}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *EventDecoder) Next() (Event, error) {
	for d.scanner.Scan() {
		d.line++
		b := d.scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(b, &ev); err != nil {
			return Event{}, fmt.Errorf("event line %d: %w", d.line, err)
		}
		return ev, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// DecodeAll reads every remaining event.
func (d *EventDecoder) DecodeAll() ([]Event, error) {
	var out []Event
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
}
