package nbv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dd0wney/cluso-tck/pkg/validation"
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Func is a pure function callable from literal text, e.g. hash("Tim Duncan")
type Func func(args ...value.Value) (value.Value, error)

// Registry maps function names to implementations. A parser resolves calls
// against the registry it was built with; there is no process-wide registry.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// DefaultRegistry returns a new registry holding the built-in functions
// len and hash.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.funcs["len"] = lenFunc
	r.funcs["hash"] = hashFunc
	return r
}

// Register adds or replaces a named function
func (r *Registry) Register(name string, fn Func) error {
	if err := validation.ValidateLabel(name); err != nil {
		return fmt.Errorf("function name: %w", err)
	}
	if fn == nil {
		return fmt.Errorf("function %s: nil implementation", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup retrieves a registered function by name
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.funcs[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
}

// Names lists registered function names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy that can be extended without affecting r
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewRegistry()
	for name, fn := range r.funcs {
		clone.funcs[name] = fn
	}
	return clone
}

var errArgCount = errors.New("wrong number of arguments")

// lenFunc returns the size of a list, set or map, or the byte length of a string
func lenFunc(args ...value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("len: %w: got %d, want 1", errArgCount, len(args))
	}
	n := args[0].Len()
	if n < 0 {
		return value.Value{}, fmt.Errorf("len: unsupported argument type %s", args[0].Kind())
	}
	return value.IntValue(int64(n)), nil
}

// hashFunc derives an integer vertex id the way the server does: strings go
// through 64-bit MurmurHash2, integers hash to themselves.
func hashFunc(args ...value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, fmt.Errorf("hash: %w: got %d, want 1", errArgCount, len(args))
	}
	switch args[0].Kind() {
	case value.KindString:
		s, _ := args[0].AsString()
		return value.IntValue(int64(murmurHash64A([]byte(s), hashSeed))), nil
	case value.KindInt:
		return args[0], nil
	default:
		return value.Value{}, fmt.Errorf("hash: unsupported argument type %s", args[0].Kind())
	}
}

const hashSeed = 0xc70f6907

// murmurHash64A is MurmurHash2, 64-bit version for 64-bit platforms
func murmurHash64A(data []byte, seed uint64) uint64 {
	const (
		m = 0xc6a4a7935bd1e995
		r = 47
	)

	h := seed ^ (uint64(len(data)) * m)

	for len(data) >= 8 {
		k := binary.LittleEndian.Uint64(data)
		k *= m
		k ^= k >> r
		k *= m

		h ^= k
		h *= m
		data = data[8:]
	}

	if len(data) > 0 {
		var tail uint64
		for i := len(data) - 1; i >= 0; i-- {
			tail = tail<<8 | uint64(data[i])
		}
		h ^= tail
		h *= m
	}

	h ^= h >> r
	h *= m
	h ^= h >> r
	return h
}
