package params

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrInvalidCollection is returned when a collection name is unknown or its
	// constructor does not produce a collection.
	ErrInvalidCollection = errors.New("invalid parameter collection")

	// ErrDuplicateCollection is returned when a name is registered twice.
	ErrDuplicateCollection = errors.New("parameter collection already registered")
)

// Collection is a named, reusable preset of builder parameters.
type Collection interface {
	// Name returns the registry name of the collection.
	Name() string

	// Apply writes the preset into the builder and returns it for chaining.
	Apply(b *Builder) *Builder
}

// CollectionFunc constructs a collection bound to the registry's builder.
type CollectionFunc func(b *Builder) Collection

// Registry maps collection names to their constructors.
type Registry struct {
	mu      sync.RWMutex
	builder *Builder
	ctors   map[string]CollectionFunc
}

// NewRegistry creates a registry whose collections share the given builder.
// A nil builder is replaced by a new empty one.
func NewRegistry(b *Builder) *Registry {
	if b == nil {
		b = NewBuilder()
	}
	return &Registry{
		builder: b,
		ctors:   make(map[string]CollectionFunc),
	}
}

// Builder returns the builder shared by all collections of the registry.
func (r *Registry) Builder() *Builder {
	return r.builder
}

// Register adds a constructor under name.
func (r *Registry) Register(name string, ctor CollectionFunc) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCollection)
	}
	if ctor == nil {
		return fmt.Errorf("%w: %s: nil constructor", ErrInvalidCollection, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCollection, name)
	}
	r.ctors[name] = ctor
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// registrations done during program initialization.
func (r *Registry) MustRegister(name string, ctor CollectionFunc) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Create builds the collection registered under name.
func (r *Registry) Create(name string) (Collection, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: could not load %q: not registered", ErrInvalidCollection, name)
	}

	c := ctor(r.builder)
	if c == nil {
		return nil, fmt.Errorf("%w: could not load %q: constructor returned nil", ErrInvalidCollection, name)
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset is a Collection defined by a fixed function over the builder.
type Preset struct {
	name    string
	builder *Builder
	apply   func(b *Builder) *Builder
}

// NewPreset returns a constructor for a collection that applies fn.
//
// Usage:
//
//	registry.MustRegister("top-rated", params.NewPreset("top-rated", func(b *params.Builder) *params.Builder {
//		return b.SetOrder("rating:desc").SetLimit(10)
//	}))
func NewPreset(name string, fn func(b *Builder) *Builder) CollectionFunc {
	return func(b *Builder) Collection {
		return &Preset{name: name, builder: b, apply: fn}
	}
}

func (p *Preset) Name() string { return p.name }

// Apply writes the preset into b, or into the registry's shared builder when b
// is nil.
func (p *Preset) Apply(b *Builder) *Builder {
	if b == nil {
		b = p.builder
	}
	return p.apply(b)
}
