//go:build darwin || freebsd || linux || netbsd

package relay

import "github.com/ebitengine/purego"

type (
	sysLoader struct{}
	sysModule uintptr
)

// SystemLoader returns the dlopen based Loader of the platform.
func SystemLoader() Loader { return sysLoader{} }

func (sysLoader) Open(path string) (Module, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	return sysModule(h), nil
}

func (m sysModule) Lookup(name string) (uintptr, error) {
	return purego.Dlsym(uintptr(m), name)
}

func (m sysModule) Close() error {
	return purego.Dlclose(uintptr(m))
}
