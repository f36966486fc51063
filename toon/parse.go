package toon

import (
	"strconv"
	"strings"
	"unicode"
)

// DecodeOptions configures the TOON decoder.
type DecodeOptions struct {
	// Strict enables structural validation beyond the base grammar,
	// such as rejecting duplicate field names in a tabular header.
	Strict bool
}

// DefaultDecodeOptions returns sensible defaults.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Strict: true}
}

// Decode parses TOON text into a value tree.
func Decode(input string) (*Value, error) {
	return DecodeWithOptions(input, DefaultDecodeOptions())
}

// DecodeWithOptions parses TOON text with custom options.
func DecodeWithOptions(input string, opts DecodeOptions) (*Value, error) {
	// Empty input decodes to an empty map, not an error.
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Map(), nil
	}

	v, err := decodeDocument(trimmed, opts)
	if err != nil {
		return nil, wrapDecode(err)
	}
	return v, nil
}

// ============================================================
// Top-Level Dispatch
// ============================================================

// docShape classifies an input into one of the four parse paths.
type docShape int

const (
	shapeJSON docShape = iota
	shapePureTabular
	shapeMixed
	shapeDict
)

func (s docShape) String() string {
	switch s {
	case shapeJSON:
		return "json"
	case shapePureTabular:
		return "tabular"
	case shapeMixed:
		return "mixed"
	default:
		return "dict"
	}
}

func decodeDocument(s string, opts DecodeOptions) (*Value, error) {
	shape := classify(s)

	if shape == shapeJSON {
		if v, err := parseJSONLiteral(s); err == nil {
			return v, nil
		}
		// A JSON-looking prefix (for example a lone `"`) fails over to
		// the TOON grammar rather than erroring prematurely.
		shape = classifyTOON(s)
	}

	switch shape {
	case shapePureTabular:
		return parseTabular(s, opts)
	case shapeMixed:
		return parseMixed(s, opts)
	default:
		return parseDict(s, opts)
	}
}

// classify decides which sub-syntax covers the (already trimmed) input.
func classify(s string) docShape {
	if looksLikeJSON(s) {
		return shapeJSON
	}
	return classifyTOON(s)
}

// classifyTOON distinguishes the three TOON document shapes. A document
// opening with a tabular header is pure tabular only when that single
// block consumes every line; trailing content makes it mixed.
func classifyTOON(s string) docShape {
	if !tabularHeaderPrefixRe.MatchString(s) {
		return shapeDict
	}
	lines := strings.Split(s, "\n")
	if findTabularEnd(lines) == len(lines) {
		return shapePureTabular
	}
	return shapeMixed
}

// looksLikeJSON reports whether the input plausibly opens a JSON
// literal and deserves a JSON-first parse attempt.
func looksLikeJSON(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '{', '[', '"':
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// findTabularEnd returns the index of the first line after the tabular
// block opened on lines[0], or len(lines) when the block consumes the
// whole document.
func findTabularEnd(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	if !tabularHeaderPrefixRe.MatchString(lines[0]) {
		return 0
	}

	m := tabularHeaderCountRe.FindStringSubmatch(lines[0])
	if m == nil {
		return 1
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		// Count overflow. Scan to the block's natural end and let the
		// block parser report the bad header.
		count = len(lines)
	}

	// Header plus count data rows.
	expectedEnd := 1 + count

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			return i
		}
		if strings.Contains(line, ":") && !looksLikeDataRow(line) {
			return i
		}
		if i >= expectedEnd {
			return i
		}
	}

	return len(lines)
}

// looksLikeDataRow distinguishes a CSV data row from a key: value line
// when scanning ambiguous content outside a declared block. A line is
// key: value when an unquoted colon precedes any comma and the text
// before it is a plain identifier; everything else is data.
func looksLikeDataRow(line string) bool {
	colon := findKeyColon(line)
	if colon == -1 {
		return true
	}
	if comma := strings.Index(line, ","); comma != -1 && comma < colon {
		return true
	}
	key := strings.TrimSpace(line[:colon])
	return !isKeyIdent(key)
}

// findKeyColon returns the position of the first colon outside
// double-quoted spans, scanning with backslash-escape awareness, or -1.
func findKeyColon(line string) int {
	inQuotes := false
	escaped := false

	for i := 0; i < len(line); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch line[i] {
		case '\\':
			escaped = true
		case '"':
			inQuotes = !inQuotes
		case ':':
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}

// isKeyIdent reports whether s is alphanumeric/underscore/hyphen only.
func isKeyIdent(s string) bool {
	if s == "" {
		return false
	}
	seen := false
	for _, r := range s {
		if r == '_' || r == '-' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		seen = true
	}
	return seen
}

// ============================================================
// Dictionary Parsing
// ============================================================

// parseDict parses a document of key: value lines. Blank lines separate
// sections in pretty output but carry no meaning on the way back in.
func parseDict(s string, opts DecodeOptions) (*Value, error) {
	result := Map()

	for _, raw := range strings.Split(s, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		colon := findKeyColon(line)
		if colon == -1 {
			return nil, decodeErrorf("missing colon in %q", line)
		}

		key := strings.TrimSpace(line[:colon])
		valueText := strings.TrimSpace(line[colon+1:])
		result.Set(key, parseValueText(valueText))
	}

	return result, nil
}

// parseMixed parses a document combining tabular blocks and key: value
// lines at the same level. A header's declared count determines how
// many subsequent non-blank lines it consumes as data rows.
func parseMixed(s string, opts DecodeOptions) (*Value, error) {
	result := Map()
	lines := strings.Split(s, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			i++
			continue
		}

		if tabularHeaderPrefixRe.MatchString(line) {
			m := tabularHeaderCountRe.FindStringSubmatch(line)
			if m == nil {
				return nil, decodeErrorf("invalid tabular header: %s", line)
			}
			count, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, decodeErrorf("invalid row count in header: %s", line)
			}

			section := []string{line}
			i++
			collected := 0
			for i < len(lines) && collected < count {
				if strings.TrimSpace(lines[i]) != "" {
					section = append(section, lines[i])
					collected++
				}
				i++
			}

			key, members, err := parseTabularBlock(strings.Join(section, "\n"), opts)
			if err != nil {
				return nil, err
			}
			if key == reservedArrayKey {
				return nil, decodeErrorf("bare-array block %q inside mixed document", key)
			}
			result.Set(key, members)
			continue
		}

		colon := findKeyColon(line)
		if colon == -1 {
			i++
			continue
		}

		key := strings.TrimSpace(line[:colon])
		valueText := strings.TrimSpace(line[colon+1:])
		result.Set(key, parseValueText(valueText))
		i++
	}

	return result, nil
}

// parseValueText parses the value side of a key: value line: a JSON
// literal when it parses as one, the raw trimmed text otherwise.
func parseValueText(s string) *Value {
	if s == "" {
		return Null()
	}
	if v, err := parseJSONLiteral(s); err == nil {
		return v
	}
	return Str(s)
}
