package toon

// ============================================================
// Tabular Heuristic
// ============================================================
//
// Tabular mode only pays off when the header overhead amortizes over
// enough rows, the members share most of their fields, and the cell
// values stay shallow. The three checks live here as a pure decision
// function over a list of maps; the encoder consults it per collection.

// TabularOptions configures when the encoder switches a list of maps
// into a tabular block.
type TabularOptions struct {
	// MinRows is the minimum member count for tabular mode.
	// Below it the header overhead outweighs the savings.
	MinRows int

	// MinCommonRatio is the required fraction of distinct field names
	// that appear in at least 70% of the members. A block with too many
	// rare fields would be mostly empty cells.
	MinCommonRatio float64

	// MaxDepth is the deepest nesting a member field value may have
	// before the block falls back to JSON. Leaf values are depth 0.
	MaxDepth int

	// SampleSize bounds how many members the depth check inspects.
	SampleSize int
}

// DefaultTabularOptions returns the tuned thresholds.
func DefaultTabularOptions() TabularOptions {
	return TabularOptions{
		MinRows:        3,
		MinCommonRatio: 0.70,
		MaxDepth:       3,
		SampleSize:     3,
	}
}

// ShouldTabularize decides whether a non-empty list of maps is worth
// rendering as a tabular block. Callers must have verified that every
// member is a map.
func ShouldTabularize(members []*Value, opts TabularOptions) bool {
	if len(members) < opts.MinRows {
		return false
	}
	if !isHomogeneous(members, opts.MinCommonRatio) {
		return false
	}
	if hasDeepNesting(members, opts) {
		return false
	}
	return true
}

// isHomogeneous checks that most distinct field names are shared across
// the members. A field is common when it appears in >=70% of members;
// the block qualifies when the common fraction exceeds the cutoff.
func isHomogeneous(members []*Value, minCommonRatio float64) bool {
	if len(members) <= 1 {
		return true
	}

	fieldCounts := make(map[string]int)
	for _, m := range members {
		for _, e := range m.mapVal {
			fieldCounts[e.Key]++
		}
	}
	if len(fieldCounts) == 0 {
		return true
	}

	commonCutoff := float64(len(members)) * 0.7
	common := 0
	for _, count := range fieldCounts {
		if float64(count) >= commonCutoff {
			common++
		}
	}

	ratio := float64(common) / float64(len(fieldCounts))
	return ratio > minCommonRatio
}

// hasDeepNesting samples the first few members and reports whether any
// top-level field value nests past MaxDepth.
func hasDeepNesting(members []*Value, opts TabularOptions) bool {
	sample := opts.SampleSize
	if sample <= 0 || sample > len(members) {
		sample = len(members)
	}

	for _, m := range members[:sample] {
		for _, e := range m.mapVal {
			if nestingDepth(e.Value, 0, opts.MaxDepth) > opts.MaxDepth {
				return true
			}
		}
	}
	return false
}

// nestingDepth computes the nesting depth of a value, short-circuiting
// once past the limit so pathological inputs stay cheap.
func nestingDepth(v *Value, depth, limit int) int {
	if depth > limit {
		return depth
	}
	if v == nil {
		return depth
	}

	switch v.kind {
	case KindMap:
		maxDepth := depth
		for _, e := range v.mapVal {
			d := nestingDepth(e.Value, depth+1, limit)
			if d > maxDepth {
				maxDepth = d
			}
			if maxDepth > limit {
				return maxDepth
			}
		}
		return maxDepth
	case KindList:
		maxDepth := depth
		for _, elem := range v.listVal {
			d := nestingDepth(elem, depth+1, limit)
			if d > maxDepth {
				maxDepth = d
			}
			if maxDepth > limit {
				return maxDepth
			}
		}
		return maxDepth
	default:
		return depth
	}
}

// isListOfMaps reports whether v is a non-empty list whose every element
// is a map. Only such lists are candidates for tabular mode.
func isListOfMaps(v *Value) bool {
	if v == nil || v.kind != KindList || len(v.listVal) == 0 {
		return false
	}
	for _, elem := range v.listVal {
		if elem == nil || elem.kind != KindMap {
			return false
		}
	}
	return true
}
