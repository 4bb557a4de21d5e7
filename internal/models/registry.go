package models

import (
	"fmt"
	"sort"
)

type Registry struct {
	models map[string]Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]Model)}
	for _, m := range []Model{gaussian(), waveguide(), absorber(), planewave()} {
		r.models[m.Name] = m
	}
	return r
}

func (r *Registry) Get(name string) (Model, error) {
	m, ok := r.models[name]
	if !ok {
		return Model{}, fmt.Errorf("unknown model: %s", name)
	}
	return m, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
