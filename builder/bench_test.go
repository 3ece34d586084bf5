package builder

import "testing"

func BenchmarkTensorSetValues(b *testing.B) {
	bld := New()
	vals := make([]float32, 1024)
	for i := range vals {
		vals[i] = float32(i) / 3
	}
	seq := Values(vals...)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bld.TensorSet("k", seq, nil, "float"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewArray(b *testing.B) {
	data := make([]float32, 224*224*3)
	b.ReportAllocs()
	b.SetBytes(int64(len(data) * 4))
	for i := 0; i < b.N; i++ {
		if _, err := NewArray(data, 1, 224, 224, 3); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkModelSetChunked(b *testing.B) {
	bld := New(WithChunkSize(64 * 1024))
	data := make([]byte, 8*1024*1024)
	opts := ModelOptions{Inputs: Name("in"), Outputs: Name("out")}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := bld.ModelSet("m", "TF", "CPU", data, opts); err != nil {
			b.Fatal(err)
		}
	}
}
