package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/rest"
	"k8s.io/klog/v2"
)

// Client is the transport boundary of the library. It resolves the
// path-relative requests the api package builds against the server base
// URL, speaks JSON, and maps error responses to apimachinery status
// errors. Everything above it (descriptors, paths, discovery
// resolution) is pure; everything below it (TLS, auth, proxies) is
// rest.Config's business.
type Client struct {
	base *url.URL
	http *http.Client
	log  logr.Logger
}

// New builds a client from a rest.Config, typically a LoadConfig result.
func New(config *rest.Config) (*Client, error) {
	httpClient, err := rest.HTTPClientFor(config)
	if err != nil {
		return nil, fmt.Errorf("building http client: %w", err)
	}
	base, _, err := rest.DefaultServerUrlFor(config)
	if err != nil {
		return nil, fmt.Errorf("resolving server url: %w", err)
	}
	return &Client{
		base: base,
		http: httpClient,
		log:  klog.Background().WithName("client"),
	}, nil
}

// WithLogger returns a copy of the client that writes request-level
// diagnostics to log.
func (c *Client) WithLogger(log logr.Logger) *Client {
	return &Client{base: c.base, http: c.http, log: log}
}

// Do resolves req against the server base and issues it. Non-2xx
// responses are returned as errors: *apierrors.StatusError when the
// server sent a Status object, a plain error otherwise.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	req.URL = c.base.ResolveReference(req.URL)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	c.log.V(4).Info("issuing request", "method", req.Method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// RequestInto issues req and decodes the JSON response body into out.
// A nil out drains and discards the body.
func (c *Client) RequestInto(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListAPIGroupResources fetches the resource list of one group-version:
// "v1" reads /api/v1, anything else reads /apis/{group}/{version}.
func (c *Client) ListAPIGroupResources(ctx context.Context, groupVersion string) (*metav1.APIResourceList, error) {
	path := "/apis/" + groupVersion
	if !strings.Contains(groupVersion, "/") {
		path = "/api/" + groupVersion
	}
	var list metav1.APIResourceList
	if err := c.getInto(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ServerGroupVersions enumerates every group-version the server serves:
// the core versions from /api followed by each named group's versions
// from /apis, in server order.
func (c *Client) ServerGroupVersions(ctx context.Context) ([]string, error) {
	var core metav1.APIVersions
	if err := c.getInto(ctx, "/api", &core); err != nil {
		return nil, err
	}
	var groups metav1.APIGroupList
	if err := c.getInto(ctx, "/apis", &groups); err != nil {
		return nil, err
	}

	gvs := make([]string, 0, len(core.Versions)+len(groups.Groups))
	gvs = append(gvs, core.Versions...)
	for _, group := range groups.Groups {
		for _, v := range group.Versions {
			gvs = append(gvs, v.GroupVersion)
		}
	}
	return gvs, nil
}

// ServerVersion reads the server's build information.
func (c *Client) ServerVersion(ctx context.Context) (*version.Info, error) {
	var info version.Info
	if err := c.getInto(ctx, "/version", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getInto(ctx context.Context, path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.RequestInto(ctx, req, out)
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	var status metav1.Status
	if err := json.Unmarshal(body, &status); err == nil && status.Kind == "Status" {
		return &apierrors.StatusError{ErrStatus: status}
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
}
