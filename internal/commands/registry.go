package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps subcommand names and aliases to their Command. Every
// taskchat subcommand (list, add, chat, signin, ...) registers itself
// here from its file's init func.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command // keyed by name and by each alias
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cmds: make(map[string]Command),
	}
}

// Register adds c under its name and aliases. It is an error for any
// of them to collide with an already registered command.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s", name)
	}
	for _, alias := range c.Aliases() {
		if _, exists := r.cmds[alias]; exists {
			return fmt.Errorf("command alias already registered: %s", alias)
		}
	}

	r.cmds[name] = c
	for _, alias := range c.Aliases() {
		r.cmds[alias] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns the registered commands, deduplicated across aliases and
// sorted by primary name. Help listings rely on this ordering.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]Command)
	for _, cmd := range r.cmds {
		seen[cmd.Name()] = cmd
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Command, len(names))
	for i, name := range names {
		result[i] = seen[name]
	}
	return result
}

// DefaultRegistry is the registry the dispatcher consults.
var DefaultRegistry = NewRegistry()

// Register adds a command to DefaultRegistry, panicking on collision.
// Called from init funcs, so a collision is a programming error.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
