package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/MikailBag/kube-rs/api"
)

// Api issues requests for one resource type, optionally bound to a
// namespace. K is the object type responses decode into: a typed
// k8s.io/api struct for compiled-in resources, api.DynamicObject for
// resources only known at runtime. Both cases share this one
// implementation because request construction only needs the
// api.ResourceType view of the resource.
type Api[K any] struct {
	client    *Client
	rt        api.ResourceType
	ops       *api.Operations
	namespace string
}

// AllApi addresses the resource across the whole cluster: every
// namespace for namespaced resources, the single collection otherwise.
func AllApi[K any](c *Client, rt api.ResourceType) *Api[K] {
	return newApi[K](c, rt, "")
}

// NamespacedApi addresses the resource inside one namespace. When rt is
// a discovery-derived descriptor with cluster scope the namespace is
// dropped, since cluster-scoped paths never carry a namespace segment.
func NamespacedApi[K any](c *Client, namespace string, rt api.ResourceType) *Api[K] {
	return newApi[K](c, rt, namespace)
}

func newApi[K any](c *Client, rt api.ResourceType, namespace string) *Api[K] {
	a := &Api[K]{client: c, rt: rt, namespace: namespace}
	if ar, ok := rt.(api.ApiResource); ok {
		a.ops = &ar.Operations
		if ar.Scope == api.ScopeCluster {
			a.namespace = ""
		}
	}
	return a
}

// Request exposes the underlying builder for operations Api does not
// wrap, e.g. subresource replacement.
func (a *Api[K]) Request() api.Request {
	return api.NewRequest(api.URLPath(a.rt, a.namespace))
}

func (a *Api[K]) Get(ctx context.Context, name string) (*K, error) {
	if err := a.preflight("get"); err != nil {
		return nil, err
	}
	req, err := a.Request().Get(name)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

func (a *Api[K]) List(ctx context.Context, lp api.ListParams) (*api.ObjectList[K], error) {
	if err := a.preflight("list"); err != nil {
		return nil, err
	}
	req, err := a.Request().List(lp)
	if err != nil {
		return nil, err
	}
	var list api.ObjectList[K]
	if err := a.client.RequestInto(ctx, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (a *Api[K]) Create(ctx context.Context, pp api.PostParams, obj K) (*K, error) {
	if err := a.preflight("create"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding object: %w", err)
	}
	req, err := a.Request().Create(pp, body)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

// Replace updates the named object with the full serialized obj, the
// "update" verb on the wire.
func (a *Api[K]) Replace(ctx context.Context, name string, pp api.PostParams, obj K) (*K, error) {
	if err := a.preflight("update"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding object: %w", err)
	}
	req, err := a.Request().Replace(name, pp, body)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

func (a *Api[K]) Patch(ctx context.Context, name string, pp api.PatchParams, patch []byte) (*K, error) {
	if err := a.preflight("patch"); err != nil {
		return nil, err
	}
	req, err := a.Request().Patch(name, pp, patch)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

func (a *Api[K]) Delete(ctx context.Context, name string, dp api.DeleteParams) error {
	if err := a.preflight("delete"); err != nil {
		return err
	}
	req, err := a.Request().Delete(name, dp)
	if err != nil {
		return err
	}
	return a.client.RequestInto(ctx, req, nil)
}

func (a *Api[K]) DeleteCollection(ctx context.Context, lp api.ListParams, dp api.DeleteParams) error {
	if err := a.preflight("deletecollection"); err != nil {
		return err
	}
	req, err := a.Request().DeleteCollection(lp, dp)
	if err != nil {
		return err
	}
	return a.client.RequestInto(ctx, req, nil)
}

// GetSubresource fetches a subresource, e.g. "status", of the named
// object.
func (a *Api[K]) GetSubresource(ctx context.Context, subresource, name string) (*K, error) {
	req, err := a.Request().GetSubresource(subresource, name)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

// PatchSubresource applies a patch document to a subresource of the
// named object.
func (a *Api[K]) PatchSubresource(ctx context.Context, subresource, name string, pp api.PatchParams, patch []byte) (*K, error) {
	req, err := a.Request().PatchSubresource(subresource, name, pp, patch)
	if err != nil {
		return nil, err
	}
	return a.decode(ctx, req)
}

// Watch starts a single watch on the collection from resourceVersion.
// The stream ends when the server closes it; starting over (or resuming
// from the last seen resourceVersion) is the caller's decision.
func (a *Api[K]) Watch(ctx context.Context, lp api.ListParams, resourceVersion string) (*WatchStream[K], error) {
	if err := a.preflight("watch"); err != nil {
		return nil, err
	}
	req, err := a.Request().Watch(lp, resourceVersion)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return newWatchStream[K](resp.Body), nil
}

// preflight rejects verbs the server reported as unsupported. Only
// discovery-derived descriptors carry that knowledge; for guessed
// descriptors and static types the server stays the authority.
func (a *Api[K]) preflight(verb string) error {
	if a.ops == nil || a.ops.Supports(verb) {
		return nil
	}
	gvk := a.rt.GroupVersionKind()
	return apierrors.NewMethodNotSupported(
		schema.GroupResource{Group: gvk.Group, Resource: a.rt.Plural()}, verb)
}

func (a *Api[K]) decode(ctx context.Context, req *http.Request) (*K, error) {
	var obj K
	if err := a.client.RequestInto(ctx, req, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}
