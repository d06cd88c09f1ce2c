package discovery

import (
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/MikailBag/kube-rs/api"
)

// ApiResourceExtras carries the details about a resource that only full
// discovery can provide: its scope, its verbs, and its recursively
// resolved subresources. It is a read-only snapshot of one discovery
// response, never mutated after construction.
type ApiResourceExtras struct {
	Scope api.Scope
	// Subresources pairs each subresource with its own extras, in the
	// order the server listed them. The server decides that order; sort
	// explicitly if you need determinism across server implementations.
	Subresources []Subresource
	Operations   api.Operations
}

// Subresource is one resolved child of a resource. Its descriptor's
// PluralName holds the bare path segment ("status"), not the
// "parent/status" spelling discovery lists use.
type Subresource struct {
	Resource api.ApiResource
	Extras   ApiResourceExtras
}

// ResolveExtras builds the extras for the resource named name out of the
// full flat list reported for one group-version. Subresources appear in
// such lists as "parent/child" entries and are resolved recursively, to
// whatever depth the data actually has.
//
// A NotFound error means name is absent from the list. That can happen
// legitimately with stale cached discovery data, so it is reported, not
// panicked on; name should always come from a prior listing of the same
// group-version.
func ResolveExtras(list *metav1.APIResourceList, name string) (ApiResourceExtras, error) {
	var record *metav1.APIResource
	for i := range list.APIResources {
		if list.APIResources[i].Name == name {
			record = &list.APIResources[i]
			break
		}
	}
	if record == nil {
		gv, err := schema.ParseGroupVersion(list.GroupVersion)
		if err != nil {
			gv = schema.GroupVersion{}
		}
		return ApiResourceExtras{}, apierrors.NewNotFound(
			schema.GroupResource{Group: gv.Group, Resource: name}, name)
	}

	self := api.FromAPIResource(record, list.GroupVersion)
	extras := ApiResourceExtras{
		Scope:      self.Scope,
		Operations: self.Operations,
	}

	prefix := name + "/"
	for i := range list.APIResources {
		res := &list.APIResources[i]
		segment, ok := strings.CutPrefix(res.Name, prefix)
		if !ok || segment == "" {
			// a trailing-slash record would otherwise recurse on itself
			continue
		}
		child := api.FromAPIResource(res, list.GroupVersion)
		child.PluralName = segment
		childExtras, err := ResolveExtras(list, res.Name)
		if err != nil {
			return ApiResourceExtras{}, err
		}
		extras.Subresources = append(extras.Subresources, Subresource{
			Resource: child,
			Extras:   childExtras,
		})
	}
	return extras, nil
}
