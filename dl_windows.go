//go:build windows

package relay

import "golang.org/x/sys/windows"

type (
	sysLoader struct{}
	sysModule windows.Handle
)

// SystemLoader returns the LoadLibrary based Loader of the platform. Path
// to UTF-16 conversion happens inside x/sys.
func SystemLoader() Loader { return sysLoader{} }

func (sysLoader) Open(path string) (Module, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return sysModule(h), nil
}

func (m sysModule) Lookup(name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(m), name)
}

func (m sysModule) Close() error {
	return windows.FreeLibrary(windows.Handle(m))
}
