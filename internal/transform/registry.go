package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/assurelab/riskquote/internal/domain"
)

// Registry maps template names to transforms, for CLI use.
type Registry struct {
	templates map[string]ProfileTransform
}

// NewRegistry creates a registry with all built-in templates registered.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]ProfileTransform)}

	r.Register(QuitSmoking{})
	r.Register(StartExercising{})
	r.Register(DropHobbies{})
	r.Register(ImproveCredit{Points: 50})
	r.Register(Relocate{Zone: domain.ZoneLow})
	r.Register(ImproveHealth{Status: domain.HealthExcellent})

	return r
}

// Register adds a transform to the registry.
func (r *Registry) Register(t ProfileTransform) {
	r.templates[t.Name()] = t
}

// Get retrieves a transform by name.
func (r *Registry) Get(name string) (ProfileTransform, bool) {
	t, ok := r.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseList resolves a comma-separated template list into transforms.
func (r *Registry) ParseList(spec string) ([]ProfileTransform, error) {
	var out []ProfileTransform
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown template %q (available: %s)",
				name, strings.Join(r.List(), ", "))
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no templates specified")
	}
	return out, nil
}

// Help returns a usage listing of all templates.
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("Available what-if templates:\n")
	for _, name := range r.List() {
		t, _ := r.Get(name)
		fmt.Fprintf(&b, "  %-18s %s\n", name, t.Description())
	}
	return b.String()
}
