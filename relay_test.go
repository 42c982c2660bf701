package relay

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/ebitengine/purego"
)

// binOp is the signature shared by all test entry points.
type binOp = func(a, b uintptr) uintptr

// The fake modules hand out real callable addresses, so relayed calls
// round-trip through the C calling convention in process.
var (
	symAdd = purego.NewCallback(func(a, b uintptr) uintptr { return a + b })
	symSub = purego.NewCallback(func(a, b uintptr) uintptr { return a - b })
	symMul = purego.NewCallback(func(a, b uintptr) uintptr { return a * b })
)

type fakeModule struct {
	syms     map[string]uintptr
	closed   int
	closeErr error
}

func (m *fakeModule) Lookup(name string) (uintptr, error) {
	if a, ok := m.syms[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("undefined symbol: %s", name)
}

func (m *fakeModule) Close() error {
	m.closed++
	return m.closeErr
}

type fakeLoader map[string]*fakeModule

func (l fakeLoader) Open(path string) (Module, error) {
	if m, ok := l[path]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("cannot open shared object: %s", path)
}

const libPath = "libtest.so"

func fullModule() *fakeModule {
	return &fakeModule{syms: map[string]uintptr{"a": symAdd, "b": symSub, "c": symMul}}
}

func newTestLibrary(mod *fakeModule) (lib *Library, a, b, c *Slot[binOp]) {
	reg := NewRegistry()
	a = Define[binOp](reg, "a")
	b = Define[binOp](reg, "b")
	c = Define[binOp](reg, "c")
	lib = NewLibraryLoader(fakeLoader{libPath: mod}, reg)
	return
}

func TestRegistryNames(t *testing.T) {
	lib, _, _, _ := newTestLibrary(fullModule())
	reg := lib.Registry()
	if reg.Len() != 3 {
		t.Fatalf("want 3 entry points, got %d", reg.Len())
	}
	names := reg.Names()
	for i, want := range []string{"a", "b", "c"} {
		if names[i] != want {
			t.Fatalf("definition order lost: %v", names)
		}
	}
}

func TestCallBeforeLoad(t *testing.T) {
	_, a, _, _ := newTestLibrary(fullModule())
	defer func() {
		err, ok := recover().(error)
		if !ok {
			t.Fatal("want error panic on unresolved call")
		}
		if !errors.Is(err, ErrNotLoaded) {
			t.Fatalf("want ErrNotLoaded, got %v", err)
		}
		var call *CallError
		if !errors.As(err, &call) || call.Name != "a" {
			t.Fatalf("want CallError naming a, got %v", err)
		}
	}()
	a.Func()
	t.Fatal("unreachable")
}

func TestLoadResolvesAll(t *testing.T) {
	mod := fullModule()
	lib, a, b, c := newTestLibrary(mod)
	fn.Panic(lib.Load(libPath))
	if !lib.Loaded() || lib.Path() != libPath {
		t.Fatalf("want loaded %s, got %q", libPath, lib.Path())
	}
	for _, s := range []*Slot[binOp]{a, b, c} {
		if !s.Resolved() {
			t.Fatalf("slot %s unresolved after load", s.Name())
		}
	}
	if got := a.Func()(40, 2); got != 42 {
		t.Fatalf("a(40,2) = %d", got)
	}
	if got := b.Func()(40, 2); got != 38 {
		t.Fatalf("b(40,2) = %d", got)
	}
	if got := c.Func()(40, 2); got != 80 {
		t.Fatalf("c(40,2) = %d", got)
	}
	fn.Panic(lib.Unload())
}

func TestLoadOpenFailed(t *testing.T) {
	lib, a, _, _ := newTestLibrary(fullModule())
	err := lib.Load("no-such-library.so")
	var open *OpenError
	if !errors.As(err, &open) || open.Path != "no-such-library.so" {
		t.Fatalf("want OpenError with path, got %v", err)
	}
	if lib.Loaded() || a.Resolved() {
		t.Fatal("failed open must leave the library unloaded")
	}
}

func TestLoadMissingSymbol(t *testing.T) {
	mod := fullModule()
	delete(mod.syms, "c")
	lib, a, b, c := newTestLibrary(mod)
	err := lib.Load(libPath)
	if !errors.Is(err, ErrMissingSymbol) {
		t.Fatalf("want ErrMissingSymbol, got %v", err)
	}
	var missing *SymbolError
	if !errors.As(err, &missing) || missing.Name != "c" {
		t.Fatalf("want SymbolError naming c, got %v", err)
	}
	if lib.Loaded() {
		t.Fatal("failed load must leave the library unloaded")
	}
	// a and b exist in the module but must be rolled back too
	for _, s := range []*Slot[binOp]{a, b, c} {
		if s.Resolved() {
			t.Fatalf("slot %s survived a failed load", s.Name())
		}
	}
	if mod.closed != 1 {
		t.Fatalf("module must be closed after a failed load, closed %d times", mod.closed)
	}
}

func TestLoadWhileLoaded(t *testing.T) {
	mod := fullModule()
	lib, _, _, _ := newTestLibrary(mod)
	fn.Panic(lib.Load(libPath))
	if err := lib.Load(libPath); !errors.Is(err, ErrAlreadyLoaded) {
		t.Fatalf("want ErrAlreadyLoaded, got %v", err)
	}
	if !lib.Loaded() || mod.closed != 0 {
		t.Fatal("rejected load must not touch the loaded library")
	}
	fn.Panic(lib.Unload())
}

func TestUnload(t *testing.T) {
	mod := fullModule()
	lib, a, b, c := newTestLibrary(mod)
	fn.Panic(lib.Load(libPath))
	fn.Panic(lib.Unload())
	if lib.Loaded() || lib.Path() != "" {
		t.Fatal("want unloaded")
	}
	if mod.closed != 1 {
		t.Fatalf("closed %d times", mod.closed)
	}
	for _, s := range []*Slot[binOp]{a, b, c} {
		if s.Resolved() {
			t.Fatalf("slot %s still resolved after unload", s.Name())
		}
	}
	defer func() {
		if err, ok := recover().(error); !ok || !errors.Is(err, ErrNotLoaded) {
			t.Fatalf("want ErrNotLoaded panic after unload, got %v", err)
		}
	}()
	a.Func()
}

func TestUnloadNotLoaded(t *testing.T) {
	lib, _, _, _ := newTestLibrary(fullModule())
	if err := lib.Unload(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("want ErrNotLoaded, got %v", err)
	}
}

func TestUnloadCloseError(t *testing.T) {
	mod := fullModule()
	mod.closeErr = errors.New("library busy")
	lib, a, _, _ := newTestLibrary(mod)
	fn.Panic(lib.Load(libPath))
	err := lib.Unload()
	var closeErr *CloseError
	if !errors.As(err, &closeErr) || !errors.Is(err, mod.closeErr) {
		t.Fatalf("want CloseError wrapping the platform error, got %v", err)
	}
	// the failed close must not keep anything bound
	if lib.Loaded() || a.Resolved() {
		t.Fatal("slots must be reset even when close fails")
	}
}

func TestReloadRoundTrip(t *testing.T) {
	mod := fullModule()
	lib, a, _, _ := newTestLibrary(mod)
	fn.Panic(lib.Load(libPath))
	first := a.Func()(40, 2)
	fn.Panic(lib.Unload())
	fn.Panic(lib.Load(libPath))
	if got := a.Func()(40, 2); got != first {
		t.Fatalf("second cycle differs: %d != %d", got, first)
	}
	fn.Panic(lib.Unload())
}

func TestResetIdempotent(t *testing.T) {
	lib, a, b, c := newTestLibrary(fullModule())
	fn.Panic(lib.Load(libPath))
	reg := lib.Registry()
	reg.reset()
	reg.reset()
	for _, s := range []*Slot[binOp]{a, b, c} {
		if s.Resolved() {
			t.Fatalf("slot %s resolved after double reset", s.Name())
		}
	}
}
