package types

import (
	"bytes"
	"fmt"
)

// IntBool is a boolean that travels as a 0/1 integer on the wire, matching
// how the backend stores checkbox fields. Unmarshalling also tolerates the
// endpoints that answer true/false or quoted digits, so the rest of the code
// never has to inspect the envelope shape.
type IntBool bool

func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (b *IntBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "1", "true":
		*b = true
	case "0", "false", "null", "":
		*b = false
	default:
		return fmt.Errorf("%w: cannot parse %s as 0/1 flag", ErrInvalidData, data)
	}
	return nil
}
