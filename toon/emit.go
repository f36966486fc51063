package toon

import (
	"sort"
	"strings"
)

// EncodeOptions configures the TOON encoder.
type EncodeOptions struct {
	// Compact separates top-level sections with a single newline
	// instead of a blank line.
	Compact bool

	// SmartOptimize consults the tabular heuristic per collection.
	// When false, every list of maps tabularizes regardless of shape
	// (the legacy always-tabular mode).
	SmartOptimize bool

	// SortKeys reorders a top-level map's keys alphabetically before
	// encoding.
	SortKeys bool

	// Tabular holds the heuristic thresholds.
	Tabular TabularOptions
}

// DefaultEncodeOptions returns sensible defaults.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Compact:       false,
		SmartOptimize: true,
		SortKeys:      false,
		Tabular:       DefaultTabularOptions(),
	}
}

// Encode converts a value tree to TOON text.
func Encode(v *Value) (string, error) {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions converts a value tree with custom options.
func EncodeWithOptions(v *Value, opts EncodeOptions) (string, error) {
	e := &encoder{opts: opts}
	s, err := e.encode(v)
	if err != nil {
		return "", wrapEncode(err)
	}
	return s, nil
}

type encoder struct {
	opts EncodeOptions
}

func (e *encoder) encode(v *Value) (string, error) {
	if v == nil {
		return "null", nil
	}

	switch v.kind {
	case KindMap:
		return e.encodeMap(v)
	case KindList:
		return e.encodeList(v)
	default:
		// Scalars keep their plain JSON form.
		return jsonLiteral(v)
	}
}

// encodeMap renders a top-level map: one section per entry, tabular
// where the heuristic approves, key: <json> otherwise.
func (e *encoder) encodeMap(v *Value) (string, error) {
	if len(v.mapVal) == 0 {
		return "{}", nil
	}

	entries := v.mapVal
	if e.opts.SortKeys {
		entries = sortedEntries(entries)
	}

	sections := make([]string, 0, len(entries))
	for _, entry := range entries {
		section, err := e.encodeSection(entry.Key, entry.Value)
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}

	if e.opts.Compact {
		return strings.Join(sections, "\n"), nil
	}
	return strings.Join(sections, "\n\n"), nil
}

func (e *encoder) encodeSection(key string, v *Value) (string, error) {
	if isListOfMaps(v) && e.useTabular(v.listVal) {
		return encodeTabularBlock(key, v.listVal)
	}

	literal, err := jsonLiteral(v)
	if err != nil {
		return "", err
	}
	return key + ": " + literal, nil
}

// encodeList renders a top-level list: a tabular block under the
// reserved array key when the heuristic approves, a JSON array literal
// otherwise.
func (e *encoder) encodeList(v *Value) (string, error) {
	if len(v.listVal) == 0 {
		return "[]", nil
	}

	if isListOfMaps(v) && e.useTabular(v.listVal) {
		return encodeTabularBlock(reservedArrayKey, v.listVal)
	}
	return jsonLiteral(v)
}

func (e *encoder) useTabular(members []*Value) bool {
	if !e.opts.SmartOptimize {
		return true
	}
	return ShouldTabularize(members, e.opts.Tabular)
}

// sortedEntries returns a key-sorted copy of map entries.
func sortedEntries(entries []MapEntry) []MapEntry {
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
