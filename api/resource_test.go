package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestFromAPIResourceNamedGroup(t *testing.T) {
	ar := FromAPIResource(&metav1.APIResource{
		Name:       "deployments",
		Kind:       "Deployment",
		Namespaced: true,
		Verbs:      []string{"get", "list", "watch", "create", "update", "patch", "delete", "deletecollection"},
	}, "apps/v1")

	assert.Equal(t, "apps", ar.Group)
	assert.Equal(t, "v1", ar.Version)
	assert.Equal(t, "apps/v1", ar.APIVersion)
	assert.Equal(t, "Deployment", ar.Kind)
	assert.Equal(t, "deployments", ar.PluralName)
	assert.Equal(t, ScopeNamespaced, ar.Scope)
	assert.Empty(t, ar.Subresources)
	assert.Equal(t, Operations{
		Create: true, Get: true, List: true, Watch: true,
		Delete: true, DeleteCollection: true, Update: true, Patch: true,
	}, ar.Operations)
}

func TestFromAPIResourceCoreGroup(t *testing.T) {
	ar := FromAPIResource(&metav1.APIResource{
		Name:       "services",
		Kind:       "Service",
		Namespaced: true,
		Verbs:      []string{"get", "list"},
	}, "v1")

	assert.Equal(t, "", ar.Group)
	assert.Equal(t, "v1", ar.Version)
	assert.Equal(t, "v1", ar.APIVersion)
	assert.Equal(t, ScopeNamespaced, ar.Scope)
}

func TestFromAPIResourceClusterScope(t *testing.T) {
	ar := FromAPIResource(&metav1.APIResource{
		Name:       "nodes",
		Kind:       "Node",
		Namespaced: false,
		Verbs:      []string{"get", "list", "watch"},
	}, "v1")

	assert.Equal(t, ScopeCluster, ar.Scope)
}

func TestFromAPIResourceRecordOverridesListGroupVersion(t *testing.T) {
	// subresource records can belong to a different group-version than
	// the list they were reported under
	ar := FromAPIResource(&metav1.APIResource{
		Name:    "deployments/scale",
		Group:   "autoscaling",
		Version: "v1",
		Kind:    "Scale",
		Verbs:   []string{"get", "update"},
	}, "apps/v1")

	assert.Equal(t, "autoscaling", ar.Group)
	assert.Equal(t, "v1", ar.Version)
	assert.Equal(t, "autoscaling/v1", ar.APIVersion)
}

func TestFromAPIResourceMalformedGroupVersionPanics(t *testing.T) {
	assert.Panics(t, func() {
		FromAPIResource(&metav1.APIResource{Name: "foos", Kind: "Foo"}, "a/b/c")
	})
}

func TestFromGVKDefaults(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "clux.dev", Version: "v1", Kind: "Foo"})

	assert.Equal(t, "clux.dev", ar.Group)
	assert.Equal(t, "v1", ar.Version)
	assert.Equal(t, "clux.dev/v1", ar.APIVersion)
	assert.Equal(t, "Foo", ar.Kind)
	assert.Equal(t, "foos", ar.PluralName)
	assert.Equal(t, ScopeNamespaced, ar.Scope)
	assert.Equal(t, []string{"status"}, ar.Subresources)
	for _, verb := range []string{"create", "get", "list", "watch", "delete", "deletecollection", "update", "patch"} {
		assert.True(t, ar.Operations.Supports(verb), verb)
	}
	assert.Empty(t, ar.Operations.Other)
}

func TestFromGVKCoreGroupAPIVersion(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Version: "v1", Kind: "Service"})
	assert.Equal(t, "v1", ar.APIVersion)
	assert.Equal(t, "services", ar.PluralName)
}

func TestAPIVersionDerivation(t *testing.T) {
	tests := []struct {
		group, version, want string
	}{
		{"", "v1", "v1"},
		{"apps", "v1", "apps/v1"},
		{"clux.dev", "v1alpha1", "clux.dev/v1alpha1"},
		{"", "v2beta1", "v2beta1"},
	}
	for _, tt := range tests {
		discovered := FromAPIResource(&metav1.APIResource{Name: "foos", Kind: "Foo"},
			schema.GroupVersion{Group: tt.group, Version: tt.version}.String())
		guessed := FromGVK(schema.GroupVersionKind{Group: tt.group, Version: tt.version, Kind: "Foo"})
		assert.Equal(t, tt.want, discovered.APIVersion)
		assert.Equal(t, tt.want, guessed.APIVersion)
	}
}

func TestToPlural(t *testing.T) {
	tests := []struct{ in, want string }{
		{"deployment", "deployments"},
		{"ingress", "ingresses"},
		{"box", "boxes"},
		{"branch", "branches"},
		{"dish", "dishes"},
		{"policy", "policies"},
		{"gateway", "gateways"}, // vowel before y
		{"foo", "foos"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toPlural(tt.in), tt.in)
	}
}

func TestResourceTypeImplementation(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"})
	var rt ResourceType = ar
	assert.Equal(t, schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "Deployment"}, rt.GroupVersionKind())
	assert.Equal(t, "deployments", rt.Plural())
	assert.Equal(t, "apps/v1", APIVersionFor(rt))
}
