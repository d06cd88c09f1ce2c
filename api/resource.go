package api

import (
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ApiResource identifies a resource type served by the cluster together
// with everything request construction needs to know about it.
type ApiResource struct {
	// Group is empty for the core group.
	Group string
	// Version of the group this resource was listed under.
	Version string
	// APIVersion is Version for the core group and "Group/Version"
	// otherwise. It is always derived from Group and Version; the two
	// cannot diverge.
	APIVersion string
	// Kind is the PascalCase singular type name.
	Kind string
	// PluralName is the lowercase plural path segment.
	PluralName string
	Scope      Scope
	// Subresources names the known subresource path segments. Populated
	// only when the descriptor comes from full discovery data.
	Subresources []string
	// Operations the server reports for this resource.
	Operations Operations
}

// FromAPIResource builds a descriptor from one discovery record and the
// group-version string of the list it appeared in. Every field except
// Subresources is taken from server-reported data. The record's own
// group/version, when set, override the list-level default; subresource
// entries occasionally belong to a different version than their parent
// list and the override keeps those correct.
//
// groupVersion must be "version" (core group) or "group/version"; more
// than one separator is a caller bug and panics.
func FromAPIResource(ar *metav1.APIResource, groupVersion string) ApiResource {
	gv, err := schema.ParseGroupVersion(groupVersion)
	if err != nil {
		panic(fmt.Sprintf("malformed group-version %q: %v", groupVersion, err))
	}
	group, version := gv.Group, gv.Version
	if ar.Group != "" {
		group = ar.Group
	}
	if ar.Version != "" {
		version = ar.Version
	}
	scope := ScopeCluster
	if ar.Namespaced {
		scope = ScopeNamespaced
	}
	return ApiResource{
		Group:      group,
		Version:    version,
		APIVersion: schema.GroupVersion{Group: group, Version: version}.String(),
		Kind:       ar.Kind,
		PluralName: ar.Name,
		Scope:      scope,
		Operations: OperationsFromVerbs(ar.Verbs),
	}
}

// FromGVK guesses a descriptor from group, version and kind alone.
//
// Without discovery data several fields cannot be known and are filled
// with the values that hold for most resources: Scope is Namespaced,
// PluralName is derived from Kind with suffix rules, Subresources is
// ["status"] and every standard verb is enabled. A request built from a
// wrong guess is rejected by the server through the normal error path.
func FromGVK(gvk schema.GroupVersionKind) ApiResource {
	return ApiResource{
		Group:        gvk.Group,
		Version:      gvk.Version,
		APIVersion:   gvk.GroupVersion().String(),
		Kind:         gvk.Kind,
		PluralName:   toPlural(strings.ToLower(gvk.Kind)),
		Scope:        ScopeNamespaced,
		Subresources: []string{"status"},
		Operations: Operations{
			Create:           true,
			Get:              true,
			List:             true,
			Watch:            true,
			Delete:           true,
			DeleteCollection: true,
			Update:           true,
			Patch:            true,
		},
	}
}

// GroupVersionKind implements ResourceType.
func (ar ApiResource) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: ar.Group, Version: ar.Version, Kind: ar.Kind}
}

// Plural implements ResourceType.
func (ar ApiResource) Plural() string {
	return ar.PluralName
}

// GroupVersionResource is the descriptor in the form client-go style
// helpers expect.
func (ar ApiResource) GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: ar.Group, Version: ar.Version, Resource: ar.PluralName}
}
