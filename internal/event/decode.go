package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when an event carries no payload
var ErrNilPayload = errors.New("event payload is nil")

// DecodePayload converts an event payload into T.
//
// Payloads published on the MemoryBus arrive as T or *T and are returned as is.
// Payloads read back from the dead-letter file or the events table arrive as
// generic JSON values and go through a marshal/unmarshal round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case nil:
		return result, ErrNilPayload
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, ErrNilPayload
		}
		return *v, nil
	case json.RawMessage:
		return result, decodeRaw(v, &result)
	case []byte:
		return result, decodeRaw(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("encode payload: %w", err)
	}
	return result, decodeRaw(data, &result)
}

func decodeRaw[T any](data []byte, out *T) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode payload into %T: %w", *out, err)
	}
	return nil
}
