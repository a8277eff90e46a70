package token

import (
	"encoding/hex"
	"math"
	"strconv"
)

// ValueKind tags the payload held by a Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueReal
	ValueString
)

// Value is the decoded payload of a literal token. String values hold raw
// bytes (string, hex string, name and stream data tokens are not UTF-8).
type Value struct {
	kind ValueKind
	num  uint64
	str  string
}

func BoolValue(b bool) Value {
	v := Value{kind: ValueBool}
	if b {
		v.num = 1
	}
	return v
}

func IntValue(i int32) Value {
	return Value{kind: ValueInt, num: uint64(uint32(i))}
}

func RealValue(f float64) Value {
	return Value{kind: ValueReal, num: math.Float64bits(f)}
}

func StringValue(s string) Value {
	return Value{kind: ValueString, str: s}
}

func BytesValue(b []byte) Value {
	return Value{kind: ValueString, str: string(b)}
}

func (v Value) Kind() ValueKind { return v.kind }

// IsNone reports whether the token carries no decoded value.
func (v Value) IsNone() bool { return v.kind == ValueNone }

func (v Value) Bool() bool { return v.kind == ValueBool && v.num == 1 }

func (v Value) Int() int32 {
	if v.kind != ValueInt {
		return 0
	}
	return int32(uint32(v.num))
}

// Real returns the value as float64; integer values are widened.
func (v Value) Real() float64 {
	switch v.kind {
	case ValueReal:
		return math.Float64frombits(v.num)
	case ValueInt:
		return float64(v.Int())
	}
	return 0
}

// Str returns the decoded bytes as a Go string.
func (v Value) Str() string {
	if v.kind != ValueString {
		return ""
	}
	return v.str
}

// Bytes returns a copy of the decoded bytes.
func (v Value) Bytes() []byte {
	if v.kind != ValueString {
		return nil
	}
	return []byte(v.str)
}

// Equal compares payloads; reals compare by bit pattern so NaN-free input
// behaves like ==, and two +Inf overflows compare equal.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}

func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.Bool())
	case ValueInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case ValueReal:
		return strconv.FormatFloat(v.Real(), 'g', -1, 64)
	case ValueString:
		if isPrintable(v.str) {
			return strconv.Quote(v.str)
		}
		return "<" + hex.EncodeToString([]byte(v.str)) + ">"
	}
	return "none"
}

func isPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x7f || (c < 0x20 && c != '\n' && c != '\r' && c != '\t') {
			return false
		}
	}
	return true
}
