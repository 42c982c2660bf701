/*
Package pattrns relays the pattrns C API, a scripted music pattern engine,
through a shared library chosen at runtime.

The package exposes the same surface a statically linked binding would:
one Go wrapper per C entry point, plus the three lifecycle calls
[LoadLibrary], [UnloadLibrary] and [LibraryLoaded]. Every entry point is a
relay slot defined at package setup; until LoadLibrary succeeded, calling
any wrapper panics with a relay.CallError.

The C API reports failures as heap allocated error strings; the wrappers
convert them to Go errors and release them through the relayed
drop_error_string. Values handed out by the library (patterns, parameter
sets) stay owned by the library and must be dropped through it, never by
the Go runtime.

The relay cannot discover entry points dynamically: the list below is
fixed at compile time and must follow the pattrns API when it changes.
Missing entry points surface as a failed LoadLibrary naming the symbol.
*/
package pattrns
