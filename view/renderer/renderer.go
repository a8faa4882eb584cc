// Package renderer writes transaction view plans in human and machine readable formats.
package renderer

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/smartcontractkit/safe-txdetails/view"
)

// Renderer writes a plan in one output format.
type Renderer interface {
	ID() string
	RenderTo(w io.Writer, plan view.Plan) error
}

// Registry manages renderer registration and lookup
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// DefaultRegistry returns a registry holding the text, markdown, yaml and json renderers.
func DefaultRegistry() (*Registry, error) {
	text, err := NewTextRenderer()
	if err != nil {
		return nil, err
	}
	md, err := NewMarkdownRenderer()
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, renderer := range []Renderer{text, md, YAMLRenderer{}, JSONRenderer{}} {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a renderer to the registry.
// Returns an error if:
// - renderer is nil
// - renderer ID is empty
// - a renderer with the same ID is already registered
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("renderer cannot be nil")
	}

	id := renderer.ID()
	if id == "" {
		return errors.New("renderer ID cannot be empty")
	}

	if _, exists := r.renderers[id]; exists {
		return fmt.Errorf("renderer with ID %q is already registered", id)
	}

	r.renderers[id] = renderer

	return nil
}

// Get retrieves a renderer by ID
func (r *Registry) Get(id string) (Renderer, bool) {
	renderer, ok := r.renderers[id]
	return renderer, ok
}

// List returns all registered renderer IDs in sorted order
func (r *Registry) List() []string {
	return slices.Sorted(maps.Keys(r.renderers))
}

// Render writes plan with the renderer registered under id.
func (r *Registry) Render(w io.Writer, id string, plan view.Plan) error {
	renderer, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("unknown format %q, expected one of %v", id, r.List())
	}

	return renderer.RenderTo(w, plan)
}
