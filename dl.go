package relay

type (
	// Loader abstracts the platform primitive that opens shared libraries.
	// [SystemLoader] returns the real one; tests may substitute their own.
	Loader interface {
		Open(path string) (Module, error)
	}
	// Module is one opened shared library as handed out by a Loader. Only
	// [Library] may Close it; slots hold addresses derived from it which
	// become invalid the moment Close is called.
	Module interface {
		Lookup(name string) (uintptr, error) //resolve the address of an exported symbol
		Close() error                        //release the library from the process
	}
)
