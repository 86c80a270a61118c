// Package calc hosts the pluggable engineering calculations and the registry
// that exposes them. Adding a calculation means implementing the Calculation
// interface and registering it; parameter metadata drives input validation
// and the API listing.
package calc

import (
	"fmt"
	"sort"
	"strings"

	"heatcli/internal/errors"
)

// Parameter describes one input or output of a calculation.
type Parameter struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Default     *float64 `json:"default,omitempty"`
}

// Calculation is one named engineering computation over scalar inputs.
type Calculation interface {
	Name() string
	Description() string
	Category() string
	Inputs() []Parameter
	Outputs() []Parameter
	References() []string
	Run(inputs map[string]float64) (map[string]float64, error)
}

// Info is the serializable description of a calculation.
type Info struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Inputs      []Parameter `json:"inputs"`
	Outputs     []Parameter `json:"outputs"`
	References  []string    `json:"references,omitempty"`
}

// meta is the embedded metadata shared by concrete calculations.
type meta struct {
	name        string
	description string
	category    string
	inputs      []Parameter
	outputs     []Parameter
	references  []string
}

func (m *meta) Name() string         { return m.name }
func (m *meta) Description() string  { return m.description }
func (m *meta) Category() string     { return m.category }
func (m *meta) Inputs() []Parameter  { return m.inputs }
func (m *meta) Outputs() []Parameter { return m.outputs }
func (m *meta) References() []string { return m.references }

// resolveInputs applies defaults and range checks against the declared
// parameters. Unknown inputs are ignored so callers can pipe the output of
// one calculation straight into the next.
func (m *meta) resolveInputs(inputs map[string]float64) (map[string]float64, error) {
	resolved := make(map[string]float64, len(m.inputs))
	var problems []string

	for _, p := range m.inputs {
		v, ok := inputs[p.Name]
		if !ok {
			if p.Default == nil {
				problems = append(problems, fmt.Sprintf("required input %q missing", p.Name))
				continue
			}
			v = *p.Default
		}
		if p.Min != nil && v < *p.Min {
			problems = append(problems, fmt.Sprintf("%s (%g) below minimum %g %s", p.Name, v, *p.Min, p.Unit))
		}
		if p.Max != nil && v > *p.Max {
			problems = append(problems, fmt.Sprintf("%s (%g) above maximum %g %s", p.Name, v, *p.Max, p.Unit))
		}
		resolved[p.Name] = v
	}

	if len(problems) > 0 {
		return nil, errors.NewCalcError(
			fmt.Sprintf("input validation failed: %s", strings.Join(problems, "; ")), nil)
	}
	return resolved, nil
}

func ptr(v float64) *float64 { return &v }

// Registry manages the available calculations.
type Registry struct {
	calculations map[string]Calculation
	categories   map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		calculations: make(map[string]Calculation),
		categories:   make(map[string][]string),
	}
}

// NewDefaultRegistry creates a registry with the standard calculations.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewHeatTransfer())
	r.Register(NewPipeSizing())
	return r
}

// Register adds a calculation, replacing any previous one of the same name.
func (r *Registry) Register(c Calculation) {
	if _, exists := r.calculations[c.Name()]; !exists {
		r.categories[c.Category()] = append(r.categories[c.Category()], c.Name())
	}
	r.calculations[c.Name()] = c
}

// Get returns the named calculation.
func (r *Registry) Get(name string) (Calculation, error) {
	c, ok := r.calculations[name]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("calculation %q", name))
	}
	return c, nil
}

// List returns registered calculation names, optionally filtered by
// category, sorted.
func (r *Registry) List(category string) []string {
	var names []string
	if category != "" {
		names = append(names, r.categories[category]...)
	} else {
		for name := range r.calculations {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Categories returns the known categories, sorted.
func (r *Registry) Categories() []string {
	cats := make([]string, 0, len(r.categories))
	for c := range r.categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Describe returns the serializable description of a calculation.
func (r *Registry) Describe(name string) (*Info, error) {
	c, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return &Info{
		Name:        c.Name(),
		Description: c.Description(),
		Category:    c.Category(),
		Inputs:      c.Inputs(),
		Outputs:     c.Outputs(),
		References:  c.References(),
	}, nil
}

// FindByInput returns calculations accepting the named input.
func (r *Registry) FindByInput(input string) []string {
	var names []string
	for name, c := range r.calculations {
		for _, p := range c.Inputs() {
			if p.Name == input {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// FindByOutput returns calculations producing the named output.
func (r *Registry) FindByOutput(output string) []string {
	var names []string
	for name, c := range r.calculations {
		for _, p := range c.Outputs() {
			if p.Name == output {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// ChainReport lists which adjacent pairs of a calculation sequence can feed
// each other and which cannot.
type ChainReport struct {
	ValidLinks   []string `json:"valid_links"`
	MissingLinks []string `json:"missing_links"`
}

// ValidateChain checks that the outputs of each calculation in the sequence
// cover at least one input of the next.
func (r *Registry) ValidateChain(names []string) (*ChainReport, error) {
	report := &ChainReport{}
	for i := 0; i+1 < len(names); i++ {
		current, err := r.Get(names[i])
		if err != nil {
			return nil, err
		}
		next, err := r.Get(names[i+1])
		if err != nil {
			return nil, err
		}

		var shared []string
		for _, out := range current.Outputs() {
			for _, in := range next.Inputs() {
				if out.Name == in.Name {
					shared = append(shared, out.Name)
				}
			}
		}

		link := fmt.Sprintf("%s -> %s", current.Name(), next.Name())
		if len(shared) > 0 {
			report.ValidLinks = append(report.ValidLinks,
				fmt.Sprintf("%s (%s)", link, strings.Join(shared, ", ")))
		} else {
			report.MissingLinks = append(report.MissingLinks, link)
		}
	}
	return report, nil
}
