package toolkit

import (
	"context"
	"fmt"
	"sort"

	"github.com/shamank/smartwallet-console/pkg/model"
)

// Action is one named operation of a toolkit client.
type Action interface {
	Name() string
	Description() string
	Parameters() []model.ParameterInfo
	// Invoke runs the action. The result is a string or a JSON-encodable
	// structured value.
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

// Toolkit is a client bound to one credential that exposes its actions.
type Toolkit interface {
	Tools() []Action
	Close()
}

// ActionFunc is the body of an action built with NewAction.
type ActionFunc func(ctx context.Context, args map[string]any) (any, error)

type action struct {
	name        string
	description string
	params      []model.ParameterInfo
	fn          ActionFunc
}

// NewAction builds an Action from its parts.
func NewAction(name, description string, params []model.ParameterInfo, fn ActionFunc) Action {
	return &action{name: name, description: description, params: params, fn: fn}
}

func (a *action) Name() string { return a.name }

func (a *action) Description() string { return a.description }

func (a *action) Parameters() []model.ParameterInfo { return a.params }

func (a *action) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return a.fn(ctx, args)
}

type static struct {
	actions []Action
	onClose func()
}

// Static returns a Toolkit over a fixed action list. onClose may be nil.
func Static(onClose func(), actions ...Action) Toolkit {
	return &static{actions: actions, onClose: onClose}
}

func (s *static) Tools() []Action { return s.actions }

func (s *static) Close() {
	if s.onClose != nil {
		s.onClose()
	}
}

// Registry maps exact, case-sensitive action names to actions.
type Registry struct {
	byName map[string]Action
	order  []string
}

// NewRegistry indexes actions. A later action with a duplicate name is
// rejected.
func NewRegistry(actions []Action) (*Registry, error) {
	r := &Registry{byName: make(map[string]Action, len(actions))}
	for _, a := range actions {
		if a == nil {
			continue
		}
		name := a.Name()
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("duplicate action %q", name)
		}
		r.byName[name] = a
		r.order = append(r.order, name)
	}
	return r, nil
}

// Lookup resolves name exactly.
func (r *Registry) Lookup(name string) (Action, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Describe lists the registered actions in registration order.
func (r *Registry) Describe() []model.ToolInfo {
	out := make([]model.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		a := r.byName[name]
		out = append(out, model.ToolInfo{
			Name:        a.Name(),
			Description: a.Description(),
			Parameters:  a.Parameters(),
		})
	}
	return out
}
