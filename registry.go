package relay

import "slices"

// Registry holds the ordered resolve and reset actions for a fixed set of
// entry points, populated by [Define] during package setup. The two action
// sequences are parallel and 1:1 with slots; actions are independent of
// each other, so their relative order carries no meaning.
//
// A Registry must not be mutated once the program may issue loads.
type Registry struct {
	names     []string
	resolvers []func(Module) error
	resetters []func()
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return new(Registry)
}

func (r *Registry) register(name string, resolve func(Module) error, reset func()) {
	r.names = append(r.names, name)
	r.resolvers = append(r.resolvers, resolve)
	r.resetters = append(r.resetters, reset)
}

// Names dump the symbol names of all defined entry points in definition
// order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len is the number of defined entry points.
func (r *Registry) Len() int { return len(r.resolvers) }

// resolve runs every resolve action against m in definition order and
// stops at the first failure. On failure every slot is reset again, so a
// failed load never leaves a partially bound registry behind.
func (r *Registry) resolve(m Module) (err error) {
	for _, bind := range r.resolvers {
		if err = bind(m); err != nil {
			r.reset()
			return
		}
	}
	return
}

// reset runs every reset action. No failure mode; safe to run twice.
func (r *Registry) reset() {
	for _, clear := range r.resetters {
		clear()
	}
}
