package builder

import "testing"

func TestLookupDtype(t *testing.T) {
	tests := map[string]string{
		"float":   "FLOAT",
		"FLOAT":   "FLOAT",
		"double":  "DOUBLE",
		"float32": "FLOAT",
		"Float64": "DOUBLE",
		"int8":    "INT8",
		"int16":   "INT16",
		"INT32":   "INT32",
		"int64":   "INT64",
		"uint8":   "UINT8",
		"uint16":  "UINT16",
		"bool":    "BOOL",
		"str":     "STRING",
		"String":  "STRING",
	}
	for name, want := range tests {
		got, ok := LookupDtype(name)
		if !ok || got != want {
			t.Errorf("LookupDtype(%q) mismatch: got %q/%v, want %q", name, got, ok, want)
		}
	}
	if _, ok := LookupDtype("uint64"); ok {
		t.Error("uint64 is not a RedisAI dtype")
	}
}

func TestSupportedDtypesOrder(t *testing.T) {
	want := []string{"float", "double", "float32", "float64", "int8", "int16", "int32", "int64", "uint8", "uint16", "bool", "str", "string"}
	got := SupportedDtypes()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d mismatch: got %s, want %s", i, got[i], want[i])
		}
	}
	if _, ok := DtypeSize(DtypeString); ok {
		t.Error("STRING has no fixed element size")
	}
}
