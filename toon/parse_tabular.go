package toon

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Tabular Block Parser
// ============================================================
//
// Header grammar: IDENT "[" DIGIT+ "]" "{" field ("," field)* "}" ":"
// followed by exactly count data rows. Blank lines inside a block are
// skipped but never counted.

var (
	tabularHeaderPrefixRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\[\d+\]\{`)
	tabularHeaderCountRe  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\[(\d+)\]`)
	tabularHeaderFullRe   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]\{([^}]*)\}:$`)
)

// parseTabular parses a document that is one tabular block and nothing
// else. The reserved array key yields a bare list; any other key wraps
// the list in a single-key map.
func parseTabular(s string, opts DecodeOptions) (*Value, error) {
	key, members, err := parseTabularBlock(s, opts)
	if err != nil {
		return nil, err
	}
	if key == reservedArrayKey {
		return members, nil
	}
	return Map(Entry(key, members)), nil
}

// parseTabularBlock parses a header plus data rows into its key and the
// decoded member list.
func parseTabularBlock(s string, opts DecodeOptions) (string, *Value, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return "", nil, decodeErrorf("empty tabular block")
	}

	header := strings.TrimSpace(lines[0])
	m := tabularHeaderFullRe.FindStringSubmatch(header)
	if m == nil {
		return "", nil, decodeErrorf("invalid tabular header: %s", header)
	}

	key := m[1]
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return "", nil, decodeErrorf("invalid row count in header: %s", header)
	}

	var fields []string
	for _, f := range strings.Split(m[3], ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}

	if opts.Strict {
		if dup := duplicateField(fields); dup != "" {
			return "", nil, &ValidationError{
				Message: "duplicate field " + strconv.Quote(dup) + " in tabular header",
			}
		}
	}

	members := List()
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		cells := splitRow(line)
		if len(cells) != len(fields) {
			return "", nil, decodeErrorf("row %d has %d values but expected %d",
				i, len(cells), len(fields))
		}

		member := Map()
		for j, field := range fields {
			member.Set(field, inferCell(cells[j]))
		}
		members.Append(member)
	}

	if members.Len() != count {
		return "", nil, decodeErrorf("expected %d rows but got %d", count, members.Len())
	}

	return key, members, nil
}

func duplicateField(fields []string) string {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			return f
		}
		seen[f] = true
	}
	return ""
}

// splitRow splits a data row on unescaped commas, reversing the four
// cell escape sequences. A backslash before any other character is
// kept literally.
func splitRow(line string) []string {
	var cells []string
	var current strings.Builder

	i := 0
	for i < len(line) {
		c := line[i]

		if c == '\\' && i+1 < len(line) {
			switch line[i+1] {
			case ',':
				current.WriteByte(',')
				i += 2
				continue
			case '\\':
				current.WriteByte('\\')
				i += 2
				continue
			case 'n':
				current.WriteByte('\n')
				i += 2
				continue
			case 'r':
				current.WriteByte('\r')
				i += 2
				continue
			}
			current.WriteByte(c)
			i++
			continue
		}

		if c == ',' {
			cells = append(cells, current.String())
			current.Reset()
			i++
			continue
		}

		current.WriteByte(c)
		i++
	}

	cells = append(cells, current.String())
	return cells
}

// inferCell recovers the typed value of a raw cell. The inference is
// necessarily lossy: a string cell whose literal content is "true" or
// "42" comes back as the typed value, never as a string.
func inferCell(cell string) *Value {
	s := strings.TrimSpace(cell)

	if s == "" {
		return Null()
	}

	if s == "true" {
		return Bool(true)
	}
	if s == "false" {
		return Bool(false)
	}

	if s[0] == '{' || s[0] == '[' {
		if v, err := parseJSONLiteral(s); err == nil {
			return v
		}
	}

	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
	}

	// Non-finite parses like "inf" stay strings: the value model never
	// holds NaN or Infinity.
	if !strings.ContainsAny(s, "xX") {
		if f, err := strconv.ParseFloat(s, 64); err == nil &&
			!math.IsNaN(f) && !math.IsInf(f, 0) {
			return Float(f)
		}
	}

	return Str(s)
}
