/*
Package relay dispatches a fixed, compiled-in C API through typed function
slots which are resolved against a shared library picked at runtime, so a
statically compiled client keeps the exact call surface it would have had
with link-time binding.

# Use Steps

 1. [Define] one [Slot] per foreign entry point on a [Registry], during
    package setup and before any load.
 2. [Library.Load] to open a shared library and resolve every slot against
    it. A single missing symbol fails the whole load and leaves every slot
    unresolved.
 3. Call through [Slot.Func] as if the functions were linked statically.
 4. [Library.Unload] to close the library; every slot drops back to the
    unresolved state it had at process start.

# Notes

 1. Registration, Load, Unload and relayed calls are not synchronized here.
    The embedding application must complete registration before the first
    Load and must drain in-flight relayed calls before an Unload.
 2. A slot never keeps an address across an unload; calling a relayed
    function while no library is loaded panics with a *[CallError] instead
    of dereferencing a stale or nil pointer.
 3. The entry point list is fixed at compile time. Nothing is discovered
    dynamically; a library is only probed for the names that were defined.
*/
package relay
