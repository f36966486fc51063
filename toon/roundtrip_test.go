package toon

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// valueDiff renders two value trees through the JSON bridge and diffs
// them, so failures show where the trees diverge.
func valueDiff(t *testing.T, a, b *Value) string {
	t.Helper()
	ja, err := ToJSONValue(a)
	require.NoError(t, err)
	jb, err := ToJSONValue(b)
	require.NoError(t, err)
	return cmp.Diff(ja, jb)
}

func requireRoundTrip(t *testing.T, v *Value) {
	t.Helper()

	encoded, err := Encode(v)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	if !Equal(v, decoded) {
		t.Fatalf("round trip mismatch for %q:\n%s", encoded, valueDiff(t, v, decoded))
	}
}

// ============================================================
// Round-Trip Properties
// ============================================================

func TestRoundTrip_Scalars(t *testing.T) {
	values := []*Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(0),
		Int(42),
		Int(-9007199254740991),
		Float(3.14),
		Float(-0.5),
		Float(1e-7),
		Float(2),
		Str("hello"),
		Str("with \"quotes\" and\nnewlines"),
		Str(""),
	}

	for _, v := range values {
		requireRoundTrip(t, v)
	}
}

func TestRoundTrip_EmptyContainers(t *testing.T) {
	requireRoundTrip(t, Map())
	requireRoundTrip(t, List())
}

func TestRoundTrip_HomogeneousArray(t *testing.T) {
	v := Map(Entry("users", List(
		userRow(1, "Alice", "admin"),
		userRow(2, "Bob", "user"),
		userRow(3, "Cy", "user"),
	)))

	encoded, err := Encode(v)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(encoded, "]{"), "expected exactly one tabular header")

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.True(t, Equal(v, decoded), valueDiff(t, v, decoded))
}

func TestRoundTrip_SmallArrayViaJSON(t *testing.T) {
	v := Map(Entry("users", List(
		userRow(1, "Alice", "admin"),
		userRow(2, "Bob", "user"),
	)))

	encoded, err := Encode(v)
	require.NoError(t, err)
	require.NotContains(t, encoded, "]{")

	requireRoundTrip(t, v)
}

func TestRoundTrip_TopLevelTabularArray(t *testing.T) {
	v := List(
		userRow(1, "Alice", "admin"),
		userRow(2, "Bob", "user"),
		userRow(3, "Cy", "user"),
	)

	encoded, err := Encode(v)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "data[3]{"), encoded)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, KindList, decoded.Kind())
	require.True(t, Equal(v, decoded), valueDiff(t, v, decoded))
}

func TestRoundTrip_MixedDocument(t *testing.T) {
	v := Map(
		Entry("users", List(
			userRow(1, "Alice", "admin"),
			userRow(2, "Bob", "user"),
			userRow(3, "Cy", "user"),
		)),
		Entry("total", Int(3)),
		Entry("source", Str("directory")),
	)
	requireRoundTrip(t, v)
}

func TestRoundTrip_CompactMode(t *testing.T) {
	v := Map(
		Entry("users", List(
			userRow(1, "Alice", "admin"),
			userRow(2, "Bob", "user"),
			userRow(3, "Cy", "user"),
		)),
		Entry("total", Int(3)),
	)

	opts := DefaultEncodeOptions()
	opts.Compact = true
	encoded, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	require.NotContains(t, encoded, "\n\n")

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.True(t, Equal(v, decoded), valueDiff(t, v, decoded))
}

func TestRoundTrip_EscapedCells(t *testing.T) {
	row := func(s string) *Value { return Map(Entry("text", Str(s))) }
	v := Map(Entry("rows", List(
		row("plain"),
		row("comma, inside"),
		row("back\\slash and\nnewline and\rreturn"),
	)))
	requireRoundTrip(t, v)
}

func TestRoundTrip_NestedCellValues(t *testing.T) {
	v := Map(Entry("rows", List(
		Map(Entry("id", Int(1)), Entry("meta", Map(Entry("a", Int(1)), Entry("b", Int(2))))),
		Map(Entry("id", Int(2)), Entry("meta", List(Int(1), Int(2)))),
		Map(Entry("id", Int(3)), Entry("meta", Null())),
	)))
	requireRoundTrip(t, v)
}

func TestRoundTrip_DeepValueViaJSON(t *testing.T) {
	deep := Map(Entry("a", Map(Entry("b", Map(Entry("c", Map(Entry("d", List(Int(1), Int(2))))))))))
	v := Map(Entry("config", deep))
	requireRoundTrip(t, v)
}

func TestRoundTrip_UsersExampleExact(t *testing.T) {
	v := Map(Entry("users", List(
		userRow(1, "Alice", "admin"),
		userRow(2, "Bob", "user"),
		userRow(3, "Cy", "user"),
	)))

	encoded, err := Encode(v)
	require.NoError(t, err)
	require.Equal(t,
		"users[3]{id,name,role}:\n1,Alice,admin\n2,Bob,user\n3,Cy,user",
		encoded)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.True(t, Equal(v, decoded), valueDiff(t, v, decoded))
}

// ============================================================
// Documented Lossy Cases
// ============================================================

func TestRoundTrip_MissingFieldBecomesNull(t *testing.T) {
	// A member lacking a field and a member holding null both come
	// back as explicit null after a tabular round trip.
	v := Map(Entry("rows", List(
		Map(Entry("id", Int(1)), Entry("note", Null())),
		Map(Entry("id", Int(2))),
		Map(Entry("id", Int(3)), Entry("note", Str("x"))),
	)))

	encoded, err := Encode(v)
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	member, err := decoded.Get("rows").Index(1)
	require.NoError(t, err)
	require.True(t, member.Has("note"))
	require.True(t, member.Get("note").IsNull())
}

func TestRoundTrip_StringyCellsChangeType(t *testing.T) {
	// Cells whose literal text reads as a typed value decode as that
	// type; the original string kind is not recoverable.
	v := Map(Entry("rows", List(
		Map(Entry("v", Str("true"))),
		Map(Entry("v", Str("42"))),
		Map(Entry("v", Str("plain"))),
	)))

	encoded, err := Encode(v)
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)

	first, err := decoded.Get("rows").Index(0)
	require.NoError(t, err)
	require.Equal(t, KindBool, first.Get("v").Kind())

	second, err := decoded.Get("rows").Index(1)
	require.NoError(t, err)
	require.Equal(t, KindInt, second.Get("v").Kind())

	third, err := decoded.Get("rows").Index(2)
	require.NoError(t, err)
	require.Equal(t, KindStr, third.Get("v").Kind())
}
