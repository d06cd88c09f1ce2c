package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/rest"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(&rest.Config{Host: server.URL})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, obj any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(obj))
}

func TestListAPIGroupResourcesPaths(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, metav1.APIResourceList{GroupVersion: "v1"})
	}))

	_, err := c.ListAPIGroupResources(context.Background(), "v1")
	assert.NoError(t, err)
	assert.Equal(t, "/api/v1", gotPath)

	_, err = c.ListAPIGroupResources(context.Background(), "apps/v1")
	assert.NoError(t, err)
	assert.Equal(t, "/apis/apps/v1", gotPath)
}

func TestListAPIGroupResourcesDecodes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, metav1.APIResourceList{
			GroupVersion: "apps/v1",
			APIResources: []metav1.APIResource{
				{Name: "deployments", Kind: "Deployment", Namespaced: true, Verbs: []string{"get", "list"}},
			},
		})
	}))

	list, err := c.ListAPIGroupResources(context.Background(), "apps/v1")
	require.NoError(t, err)
	assert.Equal(t, "apps/v1", list.GroupVersion)
	require.Len(t, list.APIResources, 1)
	assert.Equal(t, "deployments", list.APIResources[0].Name)
}

func TestServerGroupVersions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api":
			writeJSON(t, w, metav1.APIVersions{Versions: []string{"v1"}})
		case "/apis":
			writeJSON(t, w, metav1.APIGroupList{Groups: []metav1.APIGroup{
				{
					Name: "apps",
					Versions: []metav1.GroupVersionForDiscovery{
						{GroupVersion: "apps/v1", Version: "v1"},
					},
				},
				{
					Name: "batch",
					Versions: []metav1.GroupVersionForDiscovery{
						{GroupVersion: "batch/v1", Version: "v1"},
						{GroupVersion: "batch/v1beta1", Version: "v1beta1"},
					},
				},
			}})
		default:
			http.NotFound(w, r)
		}
	}))

	gvs, err := c.ServerGroupVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "apps/v1", "batch/v1", "batch/v1beta1"}, gvs)
}

func TestServerVersion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeJSON(t, w, version.Info{Major: "1", Minor: "35", GitVersion: "v1.35.0"})
	}))

	info, err := c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.35.0", info.GitVersion)
}

func TestStatusErrorMapping(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, metav1.Status{
			TypeMeta: metav1.TypeMeta{Kind: "Status", APIVersion: "v1"},
			Status:   metav1.StatusFailure,
			Reason:   metav1.StatusReasonNotFound,
			Code:     http.StatusNotFound,
			Message:  `pods "missing" not found`,
		})
	}))

	_, err := c.ListAPIGroupResources(context.Background(), "v1")
	require.Error(t, err)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestNonStatusErrorBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "proxy exploded", http.StatusBadGateway)
	}))

	_, err := c.ServerVersion(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy exploded")
}
