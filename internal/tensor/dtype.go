// Package tensor provides the dense array storage behind a tensor handle.
package tensor

// DataType identifies the scalar type stored in a dense array.
//
// The array layer can hold more scalar types than the exchange codec accepts;
// the codec's type registry decides which of these may cross the handle boundary.
type DataType int

// Data types known to the array layer.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Unknown is returned where no data type could be determined.
const Unknown DataType = -1

type dtypeInfo struct {
	name string
	size int
}

// Indexed by DataType.
var dtypeTable = [...]dtypeInfo{
	Float32: {"float32", 4},
	Float64: {"float64", 8},
	Int32:   {"int32", 4},
	Int64:   {"int64", 8},
	Uint8:   {"uint8", 1},
	Bool:    {"bool", 1},
}

// Valid reports whether dt names a known data type.
func (dt DataType) Valid() bool {
	return dt >= 0 && int(dt) < len(dtypeTable)
}

// Size returns the byte width of one element. Panics for unknown types.
func (dt DataType) Size() int {
	if !dt.Valid() {
		panic("unknown data type")
	}
	return dtypeTable[dt].size
}

func (dt DataType) String() string {
	if !dt.Valid() {
		return "unknown"
	}
	return dtypeTable[dt].name
}

// ParseDataType is the inverse of String.
func ParseDataType(name string) (DataType, bool) {
	for i, info := range dtypeTable {
		if info.name == name {
			return DataType(i), true
		}
	}
	return Unknown, false
}
