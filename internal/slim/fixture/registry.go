package fixture

import "sync"

// Registry maps class-path strings to fixture constructors. It is populated
// at setup time and shared read-only across sessions.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register binds a constructor to a dotted class path, e.g.
// "Fixtures.Calculator".
func (r *Registry) Register(classPath string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[classPath] = ctor
}

// Lookup returns the constructor registered under an exact class path.
func (r *Registry) Lookup(classPath string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[classPath]
	return ctor, ok
}

// Resolve tries the class path directly, then prefixed with each import path
// in recorded order. The earliest import wins.
func (r *Registry) Resolve(class string, imports []string) (Constructor, bool) {
	if ctor, ok := r.Lookup(class); ok {
		return ctor, true
	}
	for _, prefix := range imports {
		if ctor, ok := r.Lookup(prefix + "." + class); ok {
			return ctor, true
		}
	}
	return nil, false
}
