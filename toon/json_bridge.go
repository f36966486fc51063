package toon

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON and Value trees. Two layers:
//   - FromJSONValue/ToJSONValue bridge Go interface{} trees from
//     encoding/json for callers that already hold decoded JSON
//   - parseJSONLiteral/appendJSON handle JSON text directly with a
//     token walk, because stdlib map decoding would lose object key
//     order and collapse ints into float64

// FromJSONValue converts a Go interface{} (as produced by
// json.Unmarshal) to a Value. Map keys are sorted for determinism since
// Go maps carry no order.
func FromJSONValue(v interface{}) (*Value, error) {
	if v == nil {
		return Null(), nil
	}

	switch val := v.(type) {
	case bool:
		return Bool(val), nil

	case float64:
		if math.IsNaN(val) {
			return nil, encodeErrorf("NaN is not supported in TOON")
		}
		if math.IsInf(val, 0) {
			return nil, encodeErrorf("Infinity is not supported in TOON")
		}
		if val == math.Trunc(val) && val >= -9007199254740991 && val <= 9007199254740991 {
			return Int(int64(val)), nil
		}
		return Float(val), nil

	case json.Number:
		return valueFromNumber(val)

	case int:
		return Int(int64(val)), nil

	case int64:
		return Int(val), nil

	case string:
		return Str(val), nil

	case []interface{}:
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			tv, err := FromJSONValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			items = append(items, tv)
		}
		return List(items...), nil

	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			tv, err := FromJSONValue(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			entries = append(entries, MapEntry{Key: k, Value: tv})
		}
		return Map(entries...), nil

	default:
		return nil, encodeErrorf("unsupported type: %T", v)
	}
}

// ToJSONValue converts a Value to a Go interface{} suitable for
// json.Marshal. Map key order is lost; use Encode for ordered output.
func ToJSONValue(v *Value) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch v.kind {
	case KindNull:
		return nil, nil

	case KindBool:
		return v.boolVal, nil

	case KindInt:
		return v.intVal, nil

	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return nil, encodeErrorf("non-finite float")
		}
		return v.floatVal, nil

	case KindStr:
		return v.strVal, nil

	case KindList:
		items := make([]interface{}, 0, len(v.listVal))
		for _, elem := range v.listVal {
			jv, err := ToJSONValue(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, jv)
		}
		return items, nil

	case KindMap:
		obj := make(map[string]interface{}, len(v.mapVal))
		for _, entry := range v.mapVal {
			jv, err := ToJSONValue(entry.Value)
			if err != nil {
				return nil, err
			}
			obj[entry.Key] = jv
		}
		return obj, nil

	default:
		return nil, encodeErrorf("unsupported value kind: %s", v.kind)
	}
}

// ============================================================
// Ordered JSON Text Parsing
// ============================================================

// parseJSONLiteral parses a complete JSON text into a Value, preserving
// object key order. Trailing input after the value is an error, so a
// TOON document that merely LOOKS like JSON at its prefix fails over to
// the TOON grammar instead of half-parsing.
func parseJSONLiteral(s string) (*Value, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeErrorf("trailing input after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromJSONToken(dec, tok)
}

func valueFromJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case json.Number:
		return valueFromNumber(t)

	case json.Delim:
		switch t {
		case '{':
			obj := Map()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, decodeErrorf("object key is not a string")
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				// Duplicate keys keep the last value, like standard
				// JSON decoding. Map keys stay unique.
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil

		case '[':
			var items []*Value
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return List(items...), nil

		default:
			return nil, decodeErrorf("unexpected delimiter %q", t.String())
		}

	default:
		return nil, decodeErrorf("unexpected JSON token %v", tok)
	}
}

// valueFromNumber keeps the int/float distinction: a literal without a
// fraction or exponent stays integral.
func valueFromNumber(n json.Number) (*Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, decodeErrorf("invalid numeric literal %q", s)
	}
	return Float(f), nil
}

// ============================================================
// Ordered JSON Text Emission
// ============================================================

// appendJSON writes the JSON literal form of a value, preserving map
// entry order. Used for every non-tabular value the encoder emits.
func appendJSON(sb *strings.Builder, v *Value) error {
	if v == nil {
		sb.WriteString("null")
		return nil
	}

	switch v.kind {
	case KindNull:
		sb.WriteString("null")

	case KindBool:
		if v.boolVal {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}

	case KindInt:
		sb.WriteString(strconv.FormatInt(v.intVal, 10))

	case KindFloat:
		s, err := formatFloat(v.floatVal)
		if err != nil {
			return err
		}
		sb.WriteString(s)

	case KindStr:
		sb.WriteString(quoteJSON(v.strVal))

	case KindList:
		sb.WriteByte('[')
		for i, elem := range v.listVal {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := appendJSON(sb, elem); err != nil {
				return err
			}
		}
		sb.WriteByte(']')

	case KindMap:
		sb.WriteByte('{')
		for i, entry := range v.mapVal {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteJSON(entry.Key))
			sb.WriteByte(':')
			if err := appendJSON(sb, entry.Value); err != nil {
				return err
			}
		}
		sb.WriteByte('}')

	default:
		return encodeErrorf("unsupported type")
	}

	return nil
}

// jsonLiteral renders a value as standalone JSON text.
func jsonLiteral(v *Value) (string, error) {
	var sb strings.Builder
	if err := appendJSON(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatFloat renders a float in its shortest round-trippable decimal
// form, keeping a fraction marker so the decoder infers Float, not Int.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) {
		return "", encodeErrorf("non-finite float")
	}
	if math.IsInf(f, 0) {
		return "", encodeErrorf("non-finite float")
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// quoteJSON escapes a string per standard JSON string syntax.
func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal of a string cannot fail; invalid UTF-8 is replaced.
		return `""`
	}
	return string(b)
}
