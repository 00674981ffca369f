package common

import (
	"errors"
	"strconv"
)

// JSONUint64 marshals a uint64 as a decimal string so that amounts above 2^53
// survive JSON clients that decode numbers as float64.
type JSONUint64 uint64

// MarshalText implements encoding.TextMarshaler.
func (b JSONUint64) MarshalText() ([]byte, error) {
	buf := strconv.AppendUint([]byte{}, uint64(b), 10)
	return buf, nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *JSONUint64) UnmarshalText(raw []byte) error {
	res, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return err
	}
	*b = JSONUint64(res)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *JSONUint64) UnmarshalJSON(input []byte) error {
	if !isString(input) {
		return errors.New("Uint64 must be formatted as string")
	}
	return b.UnmarshalText(input[1 : len(input)-1])
}

func isString(input []byte) bool {
	return len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"'
}
