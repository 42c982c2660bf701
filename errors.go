package relay

import "errors"

var (
	// ErrNotLoaded occurs when a relayed call or an Unload happens while no library is loaded.
	ErrNotLoaded = errors.New("library not loaded")
	// ErrAlreadyLoaded occurs when Load is requested while a library is still loaded.
	ErrAlreadyLoaded = errors.New("library already loaded")
	// ErrMissingSymbol occurs when a loaded library lacks a defined entry point.
	ErrMissingSymbol = errors.New("missing symbol")
)

// OpenError reports that the platform loader could not open the library at
// Path. Err carries the platform diagnostic.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return "open library " + e.Path + ": " + e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

// SymbolError reports a defined entry point the opened library does not
// export. Matches ErrMissingSymbol; Err carries the platform diagnostic,
// if any.
type SymbolError struct {
	Name string
	Err  error
}

func (e *SymbolError) Error() string {
	if e.Err != nil {
		return "resolve symbol " + e.Name + ": " + e.Err.Error()
	}
	return "resolve symbol " + e.Name + ": not exported"
}
func (e *SymbolError) Unwrap() error        { return e.Err }
func (e *SymbolError) Is(target error) bool { return target == ErrMissingSymbol }

// CloseError reports that the platform loader failed to close the library
// at Path. Slots are reset regardless, so the failure is diagnostic only.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string { return "close library " + e.Path + ": " + e.Err.Error() }
func (e *CloseError) Unwrap() error { return e.Err }

// CallError is the panic payload of a relayed call issued while the slot
// named Name is unresolved. Matches ErrNotLoaded.
type CallError struct {
	Name string
}

func (e *CallError) Error() string        { return "call " + e.Name + ": library not loaded" }
func (e *CallError) Is(target error) bool { return target == ErrNotLoaded }
