package relay

import (
	"testing"

	"github.com/ZenLiuCN/fn"
)

func BenchmarkRelayedCall(b *testing.B) {
	lib, a, _, _ := newTestLibrary(fullModule())
	fn.Panic(lib.Load(libPath))
	defer func() { fn.Panic(lib.Unload()) }()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Func()(uintptr(i), 1)
	}
}

func BenchmarkDirectCall(b *testing.B) {
	direct := func(x, y uintptr) uintptr { return x + y }
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		direct(uintptr(i), 1)
	}
}
