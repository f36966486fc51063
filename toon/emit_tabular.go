package toon

import (
	"bytes"
	"strconv"
	"strings"
)

// reservedArrayKey names a tabular block that stands for a bare
// top-level array rather than a single-key map.
const reservedArrayKey = "data"

// ============================================================
// Tabular Block Encoder
// ============================================================
//
// A tabular block is a header plus one comma-joined row per member:
//
//   users[3]{id,name,role}:
//   1,Alice,admin
//   2,Bob,user
//   3,Cy,user
//
// The field list is the first-seen union of member keys; a member
// lacking a field contributes an empty cell.

// encodeTabularBlock renders a list of maps as a tabular block.
func encodeTabularBlock(key string, members []*Value) (string, error) {
	if len(members) == 0 {
		return key + "[0]{}:", nil
	}

	fields := unionFields(members)

	var buf bytes.Buffer
	buf.WriteString(key)
	buf.WriteByte('[')
	buf.WriteString(strconv.Itoa(len(members)))
	buf.WriteString("]{")
	buf.WriteString(strings.Join(fields, ","))
	buf.WriteString("}:")

	for _, member := range members {
		buf.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			cell, err := formatCell(member.Get(field))
			if err != nil {
				return "", err
			}
			buf.WriteString(cell)
		}
	}

	return buf.String(), nil
}

// unionFields collects member keys in first-seen order across the whole
// member sequence.
func unionFields(members []*Value) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, m := range members {
		for _, e := range m.mapVal {
			if !seen[e.Key] {
				fields = append(fields, e.Key)
				seen[e.Key] = true
			}
		}
	}
	return fields
}

// formatCell renders a single value for inclusion in a tabular row.
// Null and absent fields both become the empty cell; nested lists and
// maps embed their JSON text with commas escaped so they can share a
// comma-delimited row.
func formatCell(v *Value) (string, error) {
	if v == nil || v.kind == KindNull {
		return "", nil
	}

	switch v.kind {
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil

	case KindInt:
		return strconv.FormatInt(v.intVal, 10), nil

	case KindFloat:
		return formatFloat(v.floatVal)

	case KindStr:
		return escapeCell(v.strVal), nil

	case KindList, KindMap:
		literal, err := jsonLiteral(v)
		if err != nil {
			return "", err
		}
		if strings.Contains(literal, ",") {
			literal = strings.ReplaceAll(literal, ",", "\\,")
		}
		return literal, nil

	default:
		return "", encodeErrorf("unsupported type")
	}
}

// escapeCell backslash-escapes the four characters that would break a
// comma-delimited row. Strings without them pass through untouched.
func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\\\n\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
