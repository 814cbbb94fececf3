package problems

import (
	"context"
	"fmt"
	"sort"
)

// Problem generates a whole dataset by itself.
//
// Implementations own their shard layout, shuffling and cleanup.
// GenerateData writes final files into dataDir and may use tmpDir for
// downloads and scratch space.
type Problem interface {
	GenerateData(ctx context.Context, dataDir, tmpDir string, numShards int) error
}

// Registry holds dynamically registered Problems by name.
//
// Not safe for concurrent use. Register everything up front.
type Registry struct {
	problems map[string]Problem
}

func NewRegistry() *Registry {
	return &Registry{problems: map[string]Problem{}}
}

// Register adds p under name.
//
// return:
//
// - error: when name is empty or already taken.
func (r *Registry) Register(name string, p Problem) error {
	if name == "" {
		return fmt.Errorf("problem name is empty")
	}
	if _, ok := r.problems[name]; ok {
		return fmt.Errorf("problem %s is registered twice", name)
	}
	r.problems[name] = p
	return nil
}

// Lookup finds the Problem registered under name, by exact match.
func (r *Registry) Lookup(name string) (Problem, bool) {
	p, ok := r.problems[name]
	return p, ok
}

// Names lists registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
