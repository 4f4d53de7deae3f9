package ft80x

import (
	"sort"
	"sync"
)

// Process-wide device table, the namespace the variant's device name is
// published in. One entry per registered chip; with the compiled variant
// fixed at build time a process normally holds a single entry.
var (
	regMu     sync.Mutex
	registrar = map[string]*Dev{}
)

func registryAdd(name string, d *Dev) error {
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := registrar[name]; ok {
		return wrap(ErrExists)
	}
	registrar[name] = d
	return nil
}

// registryRemove drops the entry only if it still maps to d, so a stale
// unlink cannot evict a re-registered device.
func registryRemove(name string, d *Dev) {
	regMu.Lock()
	defer regMu.Unlock()
	if registrar[name] == d {
		delete(registrar, name)
	}
}

// ByName returns the registered device with that name, or nil.
func ByName(name string) *Dev {
	regMu.Lock()
	defer regMu.Unlock()
	return registrar[name]
}

// All returns the names of all registered devices, sorted.
func All() []string {
	regMu.Lock()
	defer regMu.Unlock()
	names := make([]string, 0, len(registrar))
	for name := range registrar {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unlink removes the named device from the registry, as Dev.Unlink does.
// It returns ErrNotFound if no such device is registered.
func Unlink(name string) error {
	regMu.Lock()
	d := registrar[name]
	regMu.Unlock()
	if d == nil {
		return wrap(ErrNotFound)
	}
	return d.Unlink()
}
