package prompt

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Manager combines repository access and template rendering.
type Manager struct {
	repo     Repository
	renderer Renderer
}

// NewManager creates a prompt manager over the repository and renderer.
func NewManager(repo Repository, renderer Renderer) *Manager {
	return &Manager{repo: repo, renderer: renderer}
}

// Get retrieves a template by ID.
func (m *Manager) Get(ctx context.Context, id string) (*Template, error) {
	return m.repo.Get(ctx, id)
}

// Render retrieves a template by ID and renders it with the variables.
func (m *Manager) Render(ctx context.Context, id string, variables map[string]string) (string, error) {
	tmpl, err := m.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return m.renderer.Render(ctx, tmpl, variables)
}

// MemoryRepository is an in-memory, concurrency-safe template store.
type MemoryRepository struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{templates: make(map[string]*Template)}
}

// Get implements the Repository interface.
func (r *MemoryRepository) Get(ctx context.Context, id string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound.WithCause(fmt.Errorf("id %q", id))
	}
	clone := *tmpl
	return &clone, nil
}

// Save implements the Repository interface.
func (r *MemoryRepository) Save(ctx context.Context, template *Template) error {
	if template == nil || template.ID == "" {
		return ErrInvalidTemplate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *template
	r.templates[template.ID] = &clone
	return nil
}

// List implements the Repository interface.
func (r *MemoryRepository) List(ctx context.Context) ([]*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Template, 0, len(r.templates))
	for _, tmpl := range r.templates {
		clone := *tmpl
		out = append(out, &clone)
	}
	return out, nil
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// TemplateRenderer substitutes {{name}} placeholders with provided values,
// falling back to declared defaults. A missing required variable is an
// error; an unknown placeholder renders as empty text.
type TemplateRenderer struct{}

// NewTemplateRenderer creates a renderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// Render implements the Renderer interface.
func (r *TemplateRenderer) Render(ctx context.Context, template *Template, variables map[string]string) (string, error) {
	if template == nil {
		return "", ErrInvalidTemplate
	}
	values := make(map[string]string, len(variables))
	for _, v := range template.Variables {
		if value, ok := variables[v.Name]; ok && strings.TrimSpace(value) != "" {
			values[v.Name] = value
			continue
		}
		if v.Required && v.DefaultValue == "" {
			return "", ErrMissingRequiredVar.WithCause(fmt.Errorf("variable %q of template %q", v.Name, template.ID))
		}
		values[v.Name] = v.DefaultValue
	}
	// Variables supplied but not declared still substitute.
	for name, value := range variables {
		if _, ok := values[name]; !ok {
			values[name] = value
		}
	}

	rendered := placeholderPattern.ReplaceAllStringFunc(template.Content, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return values[name]
	})
	return rendered, nil
}
