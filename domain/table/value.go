package table

import (
	"encoding/json"
	"strconv"

	"marketlens/domain/core"
)

// Value represents a typed cell value with an explicit missing variant.
// Coercion failures produce missing values rather than zeroes so downstream
// math can distinguish "no data" from "zero".
type Value struct {
	Type       ValueType
	NumericVal *float64
	StringVal  *string
	DateVal    *core.Date
	IsMissing  bool
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeString  ValueType = "string"
	ValueTypeDate    ValueType = "date"
	ValueTypeMissing ValueType = "missing"
)

// Numeric creates a numeric value
func Numeric(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// String creates a string value; empty strings collapse to missing
func String(s string) Value {
	if s == "" {
		return Missing()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// DateValue creates a date value
func DateValue(d core.Date) Value {
	return Value{Type: ValueTypeDate, DateVal: &d}
}

// Missing creates a missing value
func Missing() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsNumeric returns true if the value holds a valid number
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsDate returns true if the value holds a valid date
func (v Value) IsDate() bool {
	return v.Type == ValueTypeDate && v.DateVal != nil
}

// AsFloat64 returns the numeric value, or 0 when not numeric
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0.0
}

// AsString returns the string value, or empty string when not a string
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsDate returns the date value, or the zero date when not a date
func (v Value) AsDate() core.Date {
	if v.DateVal != nil {
		return *v.DateVal
	}
	return core.Date{}
}

// MarshalJSON emits the payload form: numerics as numbers, dates as
// YYYY-MM-DD strings, missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.IsNumeric():
		return json.Marshal(*v.NumericVal)
	case v.IsDate():
		return json.Marshal(v.DateVal.String())
	case v.Type == ValueTypeString && v.StringVal != nil:
		return json.Marshal(*v.StringVal)
	}
	return []byte("null"), nil
}

// Render formats the value for tabular export: dates in canonical
// YYYY-MM-DD form, numerics as plain decimals, missing as empty string.
func (v Value) Render() string {
	switch v.Type {
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'f', -1, 64)
		}
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeDate:
		if v.DateVal != nil {
			return v.DateVal.String()
		}
	}
	return ""
}
