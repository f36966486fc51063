package toon

import (
	"strings"
	"testing"
)

// ============================================================
// Cell Formatting
// ============================================================

func TestFormatCell_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    *Value
		expected string
	}{
		{"nil", nil, ""},
		{"null", Null(), ""},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"float", Float(1.5), "1.5"},
		{"whole float", Float(3), "3.0"},
		{"plain string", Str("hello world"), "hello world"},
		{"string with comma", Str("a,b"), `a\,b`},
		{"string with backslash", Str(`a\b`), `a\\b`},
		{"string with newline", Str("a\nb"), `a\nb`},
		{"string with CR", Str("a\rb"), `a\rb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatCell(tt.value)
			if err != nil {
				t.Fatalf("formatCell failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatCell_NestedJSON(t *testing.T) {
	got, err := formatCell(Map(Entry("a", Int(1)), Entry("b", Int(2))))
	if err != nil {
		t.Fatalf("formatCell failed: %v", err)
	}
	if got != `{"a":1\,"b":2}` {
		t.Errorf("Nested map cell: got %q", got)
	}

	got, err = formatCell(List(Int(1), Int(2)))
	if err != nil {
		t.Fatalf("formatCell failed: %v", err)
	}
	if got != `[1\,2]` {
		t.Errorf("Nested list cell: got %q", got)
	}
}

func TestEscapeCell_Idempotence(t *testing.T) {
	original := "a,b\\c\nd\re"

	escaped := escapeCell(original)
	cells := splitRow(escaped)

	if len(cells) != 1 {
		t.Fatalf("Escaped string split into %d cells", len(cells))
	}
	if cells[0] != original {
		t.Errorf("Round trip mismatch: %q != %q", cells[0], original)
	}
}

// ============================================================
// Block Structure
// ============================================================

func TestEncodeTabularBlock_UnionFields(t *testing.T) {
	members := []*Value{
		Map(Entry("id", Int(1)), Entry("name", Str("a"))),
		Map(Entry("id", Int(2)), Entry("extra", Bool(true))),
		Map(Entry("name", Str("c")), Entry("id", Int(3))),
	}

	got, err := encodeTabularBlock("rows", members)
	if err != nil {
		t.Fatalf("encodeTabularBlock failed: %v", err)
	}

	lines := strings.Split(got, "\n")
	if lines[0] != "rows[3]{id,name,extra}:" {
		t.Errorf("Header fields must be first-seen order: %q", lines[0])
	}
	// Member 2 lacks name, member 1 and 3 lack extra.
	if lines[1] != "1,a," {
		t.Errorf("Row 1: got %q", lines[1])
	}
	if lines[2] != "2,,true" {
		t.Errorf("Row 2: got %q", lines[2])
	}
	if lines[3] != "3,c," {
		t.Errorf("Row 3: got %q", lines[3])
	}
}

func TestEncodeTabularBlock_NullAndMissingLookAlike(t *testing.T) {
	members := []*Value{
		Map(Entry("id", Int(1)), Entry("note", Null())),
		Map(Entry("id", Int(2))),
		Map(Entry("id", Int(3)), Entry("note", Str("x"))),
	}

	got, err := encodeTabularBlock("rows", members)
	if err != nil {
		t.Fatalf("encodeTabularBlock failed: %v", err)
	}

	lines := strings.Split(got, "\n")
	// Explicit null and absent field both render as the empty cell.
	if lines[1] != "1," || lines[2] != "2," {
		t.Errorf("Expected indistinguishable empty cells, got %q / %q", lines[1], lines[2])
	}
}

func TestEncodeTabularBlock_RowCountMatchesHeader(t *testing.T) {
	members := homogeneousMembers(5)
	got, err := encodeTabularBlock("u", members)
	if err != nil {
		t.Fatalf("encodeTabularBlock failed: %v", err)
	}

	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[0], "u[5]{") {
		t.Errorf("Header: %q", lines[0])
	}
	if len(lines)-1 != 5 {
		t.Errorf("Expected 5 data rows, got %d", len(lines)-1)
	}
}
