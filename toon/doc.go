// Package toon implements TOON, a token-optimized reversible text codec
// for JSON-like data.
//
// TOON re-encodes a JSON value tree so that arrays of similar objects
// become a compact CSV-like tabular block, while everything else stays
// plain JSON. The result reads well for humans and costs significantly
// fewer tokens when fed to a language model.
//
// # Format
//
// A tabular block is a header plus one comma-separated row per member:
//
//	users[3]{id,name,role}:
//	1,Alice,admin
//	2,Bob,user
//	3,Cy,user
//
// A document mixes three sub-syntaxes at the top level:
//   - raw JSON literals (scalars, {...}, [...])
//   - key: value lines (value is a JSON literal or an opaque string)
//   - key[count]{fields}: tabular blocks
//
// The reserved key "data" marks a tabular block that stands for a bare
// top-level array rather than a single-key object.
//
// # Heuristics
//
// The encoder only tabularizes an array of objects when it pays off:
// at least 3 members, field sets shared by most members, and shallow
// nesting. Thresholds live in TabularOptions and can be tuned per call.
//
// # Lossy cases
//
// Two ambiguities are inherent to the grammar and deliberately kept:
//   - A tabular cell whose literal text is "true", "42" or similar always
//     decodes to the typed value, never to a string.
//   - A missing field and an explicit null both render as an empty cell,
//     so a tabular round-trip cannot tell them apart.
package toon
