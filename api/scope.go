package api

// Scope tells whether objects of a resource type live inside a namespace
// or are cluster-global.
type Scope string

const (
	ScopeCluster    Scope = "Cluster"
	ScopeNamespaced Scope = "Namespaced"
)
