package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type valueKind uint8

const (
	valueNull valueKind = iota
	valueNumber
	valueText
)

// NormalizedValue is a field value reduced to a comparable form. The zero
// value is null. Numbers are kept as exact decimals, so two digit strings
// compare equal only when they are the same quantity.
type NormalizedValue struct {
	kind valueKind
	text string
}

var numericTextRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// Normalize canonicalizes a field value for change detection:
//   - nil, empty and whitespace-only text become null
//   - numbers and numeric-looking text become the same exact number
//   - other text is trimmed, case is preserved
func Normalize(v any) NormalizedValue {
	switch x := v.(type) {
	case nil:
		return NormalizedValue{}
	case *string:
		if x == nil {
			return NormalizedValue{}
		}
		return normalizeText(*x)
	case *int:
		if x == nil {
			return NormalizedValue{}
		}
		return integer(int64(*x))
	case string:
		return normalizeText(x)
	case json.Number:
		return normalizeText(x.String())
	case int:
		return integer(int64(x))
	case int32:
		return integer(int64(x))
	case int64:
		return integer(x)
	case float32:
		return normalizeFloat(float64(x), 32)
	case float64:
		return normalizeFloat(x, 64)
	case bool:
		return normalizeText(strconv.FormatBool(x))
	default:
		return normalizeText(fmt.Sprint(x))
	}
}

func normalizeText(s string) NormalizedValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return NormalizedValue{}
	}
	if numericTextRe.MatchString(s) {
		if d, err := decimal.NewFromString(strings.TrimSuffix(s, ".")); err == nil {
			return number(d)
		}
	}
	return NormalizedValue{kind: valueText, text: s}
}

// normalizeFloat goes through the shortest decimal that round-trips, so 0.1
// decoded from JSON equals the text "0.1".
func normalizeFloat(f float64, bits int) NormalizedValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NormalizedValue{kind: valueText, text: strconv.FormatFloat(f, 'g', -1, bits)}
	}
	if bits == 32 {
		return number(decimal.NewFromFloat32(float32(f)))
	}
	return number(decimal.NewFromFloat(f))
}

func integer(n int64) NormalizedValue { return number(decimal.NewFromInt(n)) }

// number keys a decimal by its plain form: no exponent, no trailing zeros.
func number(d decimal.Decimal) NormalizedValue {
	return NormalizedValue{kind: valueNumber, text: d.String()}
}

func (v NormalizedValue) IsNull() bool { return v.kind == valueNull }

// Equal reports strict equality of two normalized values.
func (v NormalizedValue) Equal(o NormalizedValue) bool { return v == o }

// NormalizeIdentity produces the actor identity key: trimmed and lowercased.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
