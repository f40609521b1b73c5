package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

var jsonNull = []byte("null")

// NullFloat64 is a float that may be absent in the upstream payload.
// Decoding never fails: null, strings that do not parse and non-finite
// numbers all decode to an invalid value.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat64
func Float(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	*n = NullFloat64{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var v float64
	switch val := raw.(type) {
	case float64:
		v = val
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	n.Float64 = v
	n.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsNaN(n.Float64) || math.IsInf(n.Float64, 0) {
		return jsonNull, nil
	}
	return json.Marshal(n.Float64)
}

// NullInt is an American odds price that may be missing for a bookmaker
type NullInt struct {
	Int   int
	Valid bool
}

// Int returns a valid NullInt
func Int(v int) NullInt {
	return NullInt{Int: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler. Empty strings and other
// unparseable values decode to an invalid price.
func (n *NullInt) UnmarshalJSON(data []byte) error {
	*n = NullInt{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch val := raw.(type) {
	case float64:
		if val != math.Trunc(val) {
			return nil
		}
		n.Int = int(val)
		n.Valid = true
	case string:
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return nil
		}
		n.Int = parsed
		n.Valid = true
	}

	return nil
}

// MarshalJSON implements json.Marshaler
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Int)
}
