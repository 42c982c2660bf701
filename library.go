package relay

import "log"

// Library owns the handle of the single loaded module and drives its
// Registry's resolve and reset actions around the load and unload steps.
// At most one module is loaded at a time; a failed Load leaves the Library
// unloaded with every slot unresolved.
//
// Load, Unload and relayed calls must be serialized by the caller, there
// is no locking here.
type Library struct {
	registry *Registry
	loader   Loader
	module   Module
	path     string
	debug    bool
}

// NewLibrary creates a Library resolving reg against modules opened by the
// platform loader, an optional debug parameter will enable debug logging.
func NewLibrary(reg *Registry, debug ...bool) *Library {
	return NewLibraryLoader(SystemLoader(), reg, debug...)
}

// NewLibraryLoader creates a Library with a custom Loader.
func NewLibraryLoader(ld Loader, reg *Registry, debug ...bool) *Library {
	l := new(Library)
	l.registry = reg
	l.loader = ld
	l.debug = len(debug) > 0 && debug[0]
	return l
}

// Load opens the shared library at path and resolves every defined entry
// point against it. Any missing symbol is fatal to the whole load: the
// just-opened module is closed again, every slot is left unresolved and
// the returned *SymbolError names the first symbol that failed. Loading
// while a library is already loaded is rejected with ErrAlreadyLoaded; the
// loaded library stays untouched.
func (l *Library) Load(path string) (err error) {
	if l.module != nil {
		return ErrAlreadyLoaded
	}
	var m Module
	if m, err = l.loader.Open(path); err != nil {
		return &OpenError{Path: path, Err: err}
	}
	if l.debug {
		log.Printf("opened %s", path)
	}
	if err = l.registry.resolve(m); err != nil {
		// resolve already reset the registry
		_ = m.Close()
		return
	}
	l.module = m
	l.path = path
	if l.debug {
		log.Printf("resolved %d entry points from %s", l.registry.Len(), path)
	}
	return
}

// Unload closes the loaded library and resets every slot to unresolved,
// equivalent to the state at process start. The reset runs even when the
// platform close fails; such a failure is surfaced as a *CloseError but
// does not keep any slot bound. Unloading while nothing is loaded returns
// ErrNotLoaded.
func (l *Library) Unload() (err error) {
	if l.module == nil {
		return ErrNotLoaded
	}
	if e := l.module.Close(); e != nil {
		err = &CloseError{Path: l.path, Err: e}
	}
	l.registry.reset()
	l.module = nil
	if l.debug {
		log.Printf("unloaded %s", l.path)
	}
	l.path = ""
	return
}

// Loaded reports whether a library is currently loaded.
func (l *Library) Loaded() bool { return l.module != nil }

// Path of the currently loaded library, empty while unloaded.
func (l *Library) Path() string { return l.path }

// Registry this Library resolves against.
func (l *Library) Registry() *Registry { return l.registry }
