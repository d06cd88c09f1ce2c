package api

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// URLPath builds the collection path for a resource type, optionally
// scoped to a namespace: "/api" or "/apis/{group}", then the version,
// then "/namespaces/{ns}" when ns is non-empty, then the plural segment.
//
// An empty namespace addresses the whole cluster. That is the only legal
// value for cluster-scoped types; for namespaced types it selects
// collection-wide operations across all namespaces, which the caller
// chooses deliberately.
func URLPath(rt ResourceType, namespace string) string {
	gvk := rt.GroupVersionKind()
	var b strings.Builder
	if gvk.Group == "" {
		b.WriteString("/api")
	} else {
		b.WriteString("/apis/")
		b.WriteString(gvk.Group)
	}
	b.WriteByte('/')
	b.WriteString(gvk.Version)
	if namespace != "" {
		b.WriteString("/namespaces/")
		b.WriteString(namespace)
	}
	b.WriteByte('/')
	b.WriteString(rt.Plural())
	return b.String()
}

// Path applies the full path rules of the descriptor: the namespace
// segment is emitted only for namespaced scope, name and subresource are
// appended when present. A subresource is only addressable under a name.
func (ar ApiResource) Path(namespace, name, subresource string) string {
	if ar.Scope != ScopeNamespaced {
		namespace = ""
	}
	p := URLPath(ar, namespace)
	if name != "" {
		p += "/" + name
		if subresource != "" {
			p += "/" + subresource
		}
	}
	return p
}

// Request builds protocol-conformant HTTP requests against one resource
// collection URL. It performs no I/O and holds no state beyond the
// collection path; the returned *http.Request carries a path-relative
// URL the transport resolves against its server base.
//
// Single-object operations require a name, collection operations do not
// accept one; violating that is reported as a *RequestValidationError
// before anything touches the network.
type Request struct {
	base string
}

// NewRequest returns a builder for the collection at base, normally a
// URLPath result.
func NewRequest(base string) Request {
	return Request{base: base}
}

// Get fetches a single object by name.
func (r Request) Get(name string) (*http.Request, error) {
	if err := requireName("get", name); err != nil {
		return nil, err
	}
	return r.build(http.MethodGet, r.base+"/"+name, url.Values{}, nil, "")
}

// List fetches the collection.
func (r Request) List(lp ListParams) (*http.Request, error) {
	q := url.Values{}
	lp.query(q, false)
	return r.build(http.MethodGet, r.base, q, nil, "")
}

// Watch starts a watch on the collection from resourceVersion (empty
// means "current state"). The response is a stream, one event per line;
// decoding and reconnecting are the transport collaborator's concern.
func (r Request) Watch(lp ListParams, resourceVersion string) (*http.Request, error) {
	q := url.Values{}
	lp.query(q, true)
	q.Set("watch", "true")
	if resourceVersion != "" {
		q.Set("resourceVersion", resourceVersion)
	}
	return r.build(http.MethodGet, r.base, q, nil, "")
}

// Create posts a new object serialized in body.
func (r Request) Create(pp PostParams, body []byte) (*http.Request, error) {
	q := url.Values{}
	pp.query(q)
	return r.build(http.MethodPost, r.base, q, body, "application/json")
}

// Replace updates the named object with the full serialized body.
func (r Request) Replace(name string, pp PostParams, body []byte) (*http.Request, error) {
	if err := requireName("replace", name); err != nil {
		return nil, err
	}
	q := url.Values{}
	pp.query(q)
	return r.build(http.MethodPut, r.base+"/"+name, q, body, "application/json")
}

// Patch applies a patch document to the named object. The content type
// follows the patch strategy in pp.Type.
func (r Request) Patch(name string, pp PatchParams, patch []byte) (*http.Request, error) {
	if err := requireName("patch", name); err != nil {
		return nil, err
	}
	if err := pp.validate("patch"); err != nil {
		return nil, err
	}
	q := url.Values{}
	pp.query(q)
	return r.build(http.MethodPatch, r.base+"/"+name, q, patch, string(pp.Type))
}

// Delete removes the named object.
func (r Request) Delete(name string, dp DeleteParams) (*http.Request, error) {
	if err := requireName("delete", name); err != nil {
		return nil, err
	}
	q := url.Values{}
	dp.query(q)
	return r.build(http.MethodDelete, r.base+"/"+name, q, nil, "")
}

// DeleteCollection removes every object selected by lp.
func (r Request) DeleteCollection(lp ListParams, dp DeleteParams) (*http.Request, error) {
	q := url.Values{}
	lp.query(q, false)
	dp.query(q)
	return r.build(http.MethodDelete, r.base, q, nil, "")
}

// GetSubresource fetches a named subresource, e.g. "status", of the
// named object.
func (r Request) GetSubresource(subresource, name string) (*http.Request, error) {
	if err := requireSubresource("get", subresource, name); err != nil {
		return nil, err
	}
	return r.build(http.MethodGet, r.base+"/"+name+"/"+subresource, url.Values{}, nil, "")
}

// ReplaceSubresource updates a subresource of the named object with the
// full serialized body.
func (r Request) ReplaceSubresource(subresource, name string, pp PostParams, body []byte) (*http.Request, error) {
	if err := requireSubresource("replace", subresource, name); err != nil {
		return nil, err
	}
	q := url.Values{}
	pp.query(q)
	return r.build(http.MethodPut, r.base+"/"+name+"/"+subresource, q, body, "application/json")
}

// PatchSubresource applies a patch document to a subresource of the
// named object.
func (r Request) PatchSubresource(subresource, name string, pp PatchParams, patch []byte) (*http.Request, error) {
	if err := requireSubresource("patch", subresource, name); err != nil {
		return nil, err
	}
	if err := pp.validate("patch"); err != nil {
		return nil, err
	}
	q := url.Values{}
	pp.query(q)
	return r.build(http.MethodPatch, r.base+"/"+name+"/"+subresource, q, patch, string(pp.Type))
}

func (r Request) build(method, path string, q url.Values, body []byte, contentType string) (*http.Request, error) {
	target := path
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func requireName(op, name string) error {
	if name == "" {
		return &RequestValidationError{Op: op, Reason: "name must not be empty"}
	}
	return nil
}

func requireSubresource(op, subresource, name string) error {
	if err := requireName(op, name); err != nil {
		return err
	}
	if subresource == "" {
		return &RequestValidationError{Op: op, Reason: "subresource must not be empty"}
	}
	return nil
}
