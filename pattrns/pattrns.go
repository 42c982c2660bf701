package pattrns

// LoadLibrary loads the pattrns shared library at path and resolves every
// API entry point against it. Either all entry points resolve or the load
// fails as a whole, closing the library again and leaving every entry
// point unbound; a relay.SymbolError then names the first missing symbol,
// which usually means the library at path implements another API version
// than this relay was compiled for.
//
// Loading while a library is already loaded is rejected with
// relay.ErrAlreadyLoaded.
func LoadLibrary(path string) error {
	return library.Load(path)
}

// UnloadLibrary closes the loaded library and unbinds every entry point,
// equivalent to the state before the first LoadLibrary. Callers must drain
// in-flight relayed calls first.
func UnloadLibrary() error {
	return library.Unload()
}

// LibraryLoaded reports whether a pattrns library is currently loaded.
func LibraryLoaded() bool {
	return library.Loaded()
}

// LibraryPath of the currently loaded library, empty while unloaded.
func LibraryPath() string {
	return library.Path()
}

// EntryPoints dump the symbol names the relay expects a pattrns library to
// export.
func EntryPoints() []string {
	return registry.Names()
}

// Initialize sets up the engine inside the loaded library, using the
// library's own allocator. Call once after LoadLibrary, before creating
// patterns.
func Initialize() error {
	return takeError(rawInitialize.Func()(0, 0))
}

// Finalize tears the engine down. Call before UnloadLibrary once all
// patterns are dropped.
func Finalize() error {
	return takeError(rawFinalize.Func()())
}
