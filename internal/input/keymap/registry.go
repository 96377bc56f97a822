package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keycalc/internal/input/key"
)

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// order records registration order for tie-breaking.
	order []string

	// index maps a canonical key (key.Event.String) to the winning binding.
	index map[string]*ParsedBinding
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
		index:   make(map[string]*ParsedBinding),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps[km.Name] = parsed
	r.order = append(r.order, km.Name)
	r.reindexLocked()
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(name)
	r.reindexLocked()
}

// unregisterLocked removes a keymap without rebuilding the index.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// reindexLocked rebuilds the lookup index. Higher priority keymaps win;
// among equal priorities the later registration wins, and within one keymap
// the later binding wins.
func (r *Registry) reindexLocked() {
	maps := r.sortedLocked()
	r.index = make(map[string]*ParsedBinding)
	for _, km := range maps {
		for i := range km.ParsedBindings {
			pb := &km.ParsedBindings[i]
			r.index[pb.Event.String()] = pb
		}
	}
}

// sortedLocked returns keymaps in ascending precedence.
func (r *Registry) sortedLocked() []*ParsedKeymap {
	maps := make([]*ParsedKeymap, 0, len(r.order))
	for _, name := range r.order {
		maps = append(maps, r.keymaps[name])
	}
	sort.SliceStable(maps, func(i, j int) bool {
		return maps[i].Priority < maps[j].Priority
	})
	return maps
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Lookup finds the binding for a key event.
func (r *Registry) Lookup(ev key.Event) (*ParsedBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pb, ok := r.index[ev.String()]
	return pb, ok
}

// Action returns the action bound to ev.
func (r *Registry) Action(ev key.Event) (Action, bool) {
	pb, ok := r.Lookup(ev)
	if !ok {
		return Action{}, false
	}
	return pb.Resolved, true
}

// AllBindings returns the effective bindings in registration order, with
// overridden entries omitted.
func (r *Registry) AllBindings() []ParsedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []ParsedBinding
	seen := make(map[*ParsedBinding]bool)
	for _, name := range r.order {
		km := r.keymaps[name]
		for i := range km.ParsedBindings {
			pb := &km.ParsedBindings[i]
			if r.index[pb.Event.String()] != pb || seen[pb] {
				continue
			}
			seen[pb] = true
			result = append(result, *pb)
		}
	}
	return result
}

// KeysFor returns the keys bound to action, in registration order.
func (r *Registry) KeysFor(action Action) []string {
	var keys []string
	for _, pb := range r.AllBindings() {
		if pb.Resolved == action {
			keys = append(keys, pb.Keys)
		}
	}
	return keys
}
