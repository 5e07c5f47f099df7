// Package rules keeps a registry of named rulesets so drivers can look up
// classic automata by name.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"ndca/pkg/rule"
)

// ErrUnknownRule reports a name no factory was registered under.
var ErrUnknownRule = errors.New("rules: unknown rule")

// Factory builds a ruleset bound to a grid of the given shape.
type Factory func(shape []int) (*rule.Ruleset, error)

var registry = map[string]Factory{}

// Register adds a ruleset factory under the provided name. Empty names and
// nil factories are ignored.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	registry[name] = f
}

// New builds the named ruleset for a grid of the given shape.
func New(name string, shape []int) (*rule.Ruleset, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return f(shape)
}

// Names lists the registered rule names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
