package relay

import "github.com/ebitengine/purego"

// Slot is the typed holder for one relayed entry point of signature F. A
// slot is either unresolved (the state at process start) or bound to the
// currently loaded library; it never keeps an address from a library that
// was unloaded since.
//
// Slots are created with [Define], exactly once per entry point.
type Slot[F any] struct {
	name string
	addr uintptr
	fn   F
}

// Define creates the slot for the entry point looked up as name and
// registers its resolve and reset actions with reg. Call during package
// setup, before the first [Library.Load]; the slot count is fixed from
// then on.
func Define[F any](reg *Registry, name string) *Slot[F] {
	s := &Slot[F]{name: name}
	reg.register(name, s.resolve, s.reset)
	return s
}

// Name of the symbol this slot is looked up by.
func (s *Slot[F]) Name() string { return s.name }

// Resolved reports whether the slot is bound to a loaded library.
func (s *Slot[F]) Resolved() bool { return s.addr != 0 }

// Func returns the bound callable. Calling while unresolved is a caller
// discipline bug, not a recoverable condition: Func panics with a
// *CallError rather than handing out a nil callable.
func (s *Slot[F]) Func() F {
	if s.addr == 0 {
		panic(&CallError{Name: s.name})
	}
	return s.fn
}

// resolve binds the slot against m. This is the single place where a looked
// up address is reinterpreted as the slot's signature; the signature is
// declared once, at the Define site, and reused for every call.
func (s *Slot[F]) resolve(m Module) error {
	addr, err := m.Lookup(s.name)
	if err != nil || addr == 0 {
		return &SymbolError{Name: s.name, Err: err}
	}
	purego.RegisterFunc(&s.fn, addr)
	s.addr = addr
	return nil
}

// reset drops the slot back to the unresolved state. Idempotent.
func (s *Slot[F]) reset() {
	var zero F
	s.fn = zero
	s.addr = 0
}
