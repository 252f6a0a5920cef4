// Package wire serializes exchange values.
//
// Two encodings are provided. The JSON form writes a leaf as an object naming
// its leaf tag and a nested value as a JSON array:
//
//	[{"type":"x","values":[1,2]},{"type":"x","values":[3,4]}]
//
// The binary form is a small header followed by the value tree:
//
//	[4 bytes: Magic "SCXV"]
//	[1 byte:  Version]
//	node := tag byte, uvarint count, then either count child nodes (tag 'a')
//	        or count little-endian scalars (a registered leaf tag)
//
// Both forms only accept leaf tags known to the codec's type registry, and
// both bound nesting depth by MaxDepth.
package wire
