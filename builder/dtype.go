package builder

import "strings"

// Wire dtype tokens.
const (
	DtypeFloat  = "FLOAT"
	DtypeDouble = "DOUBLE"
	DtypeInt8   = "INT8"
	DtypeInt16  = "INT16"
	DtypeInt32  = "INT32"
	DtypeInt64  = "INT64"
	DtypeUint8  = "UINT8"
	DtypeUint16 = "UINT16"
	DtypeBool   = "BOOL"
	DtypeString = "STRING"
)

// dtypeTable maps accepted dtype names to wire tokens. Order is the order
// reported back to callers.
var dtypeTable = []struct {
	name  string
	token string
}{
	{"float", DtypeFloat},
	{"double", DtypeDouble},
	{"float32", DtypeFloat},
	{"float64", DtypeDouble},
	{"int8", DtypeInt8},
	{"int16", DtypeInt16},
	{"int32", DtypeInt32},
	{"int64", DtypeInt64},
	{"uint8", DtypeUint8},
	{"uint16", DtypeUint16},
	{"bool", DtypeBool},
	{"str", DtypeString},
	{"string", DtypeString},
}

// dtypeSize is the element width in bytes of each fixed-size dtype.
var dtypeSize = map[string]int{
	DtypeFloat:  4,
	DtypeDouble: 8,
	DtypeInt8:   1,
	DtypeInt16:  2,
	DtypeInt32:  4,
	DtypeInt64:  8,
	DtypeUint8:  1,
	DtypeUint16: 2,
	DtypeBool:   1,
}

// LookupDtype resolves a dtype name, case-insensitively, to its wire token.
func LookupDtype(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, d := range dtypeTable {
		if d.name == name {
			return d.token, true
		}
	}
	return "", false
}

// SupportedDtypes lists every accepted dtype name.
func SupportedDtypes() []string {
	names := make([]string, len(dtypeTable))
	for i, d := range dtypeTable {
		names[i] = d.name
	}
	return names
}

// DtypeSize returns the element width of a wire dtype token. STRING has no
// fixed width and reports false.
func DtypeSize(token string) (int, bool) {
	n, ok := dtypeSize[token]
	return n, ok
}
