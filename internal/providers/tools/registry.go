package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/truthlens/internal/core"
)

var (
	ErrDuplicateTool = errors.New("duplicate tool name")
	ErrInvalidTool   = errors.New("invalid tool")
	ErrFrozen        = errors.New("registry is frozen")
)

// Registry holds the capability tools in registration order.
// After Freeze it is read-only and safe for concurrent use.
type Registry struct {
	tools  []core.Tool
	index  map[string]int
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Provider is implemented by tool groups that contribute definitions.
type Provider interface {
	Definitions() []core.Tool
}

func (r *Registry) Register(t core.Tool) error {
	if r.frozen {
		return ErrFrozen
	}
	if t.Name == "" || t.Invoke == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTool, t.Name)
	}
	if _, ok := r.index[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
	return nil
}

func (r *Registry) RegisterAll(p Provider) error {
	for _, t := range p.Definitions() {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Freeze() *Registry {
	r.frozen = true
	return r
}

// Tools returns a copy of the registered tools.
func (r *Registry) Tools() []core.Tool {
	out := make([]core.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

func (r *Registry) Lookup(name string) (core.Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return core.Tool{}, false
	}
	return r.tools[i], true
}

// Describe renders one "name: description" line per tool.
func (r *Registry) Describe() string {
	lines := make([]string, len(r.tools))
	for i, t := range r.tools {
		lines[i] = t.Name + ": " + t.Description
	}
	return strings.Join(lines, "\n")
}
