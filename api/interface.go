package api

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ResourceType names a resource type precisely enough to route requests
// to it. ApiResource implements it for types discovered or guessed at
// runtime by reading its own fields; compiled-in types implement it with
// zero-size marker types whose methods return constants. Request
// construction is written against this interface so both cases share one
// code path.
type ResourceType interface {
	GroupVersionKind() schema.GroupVersionKind
	Plural() string
}

// Object is the view of a single object instance the request layer
// needs: read/write access to its standard metadata. *DynamicObject
// satisfies it, as does every typed k8s.io/api object.
type Object interface {
	metav1.Object
}

// APIVersionFor derives the apiVersion string for a resource type:
// "version" for the core group, "group/version" otherwise.
func APIVersionFor(rt ResourceType) string {
	return rt.GroupVersionKind().GroupVersion().String()
}
