package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestNewDynamicObject(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "clux.dev", Version: "v1", Kind: "Foo"})
	obj := NewDynamicObject("baz", ar)

	assert.Equal(t, &metav1.TypeMeta{APIVersion: "clux.dev/v1", Kind: "Foo"}, obj.Types)
	assert.Equal(t, "baz", obj.Name)
	assert.Empty(t, obj.Namespace)
	assert.Empty(t, obj.Data)
}

func TestDynamicObjectBuilderDoesNotAlias(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "clux.dev", Version: "v1", Kind: "Foo"})
	base := NewDynamicObject("baz", ar)

	a := base.WithNamespace("one")
	b := base.WithNamespace("two")

	assert.Empty(t, base.Namespace)
	assert.Equal(t, "one", a.Namespace)
	assert.Equal(t, "two", b.Namespace)
}

func TestDynamicObjectMarshal(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "clux.dev", Version: "v1", Kind: "Foo"})
	obj := NewDynamicObject("baz", ar).
		WithNamespace("myns").
		WithData(map[string]any{"spec": map[string]any{"replicas": 3}})

	raw, err := json.Marshal(obj)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "clux.dev/v1", decoded["apiVersion"])
	assert.Equal(t, "Foo", decoded["kind"])
	meta, ok := decoded["metadata"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "baz", meta["name"])
	assert.Equal(t, "myns", meta["namespace"])
	// payload fields are siblings of the envelope, not nested under a key
	spec, ok := decoded["spec"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(3), spec["replicas"])
}

func TestDynamicObjectMarshalOmitsAbsentTypes(t *testing.T) {
	obj := DynamicObject{ObjectMeta: metav1.ObjectMeta{Name: "x"}}
	raw, err := json.Marshal(obj)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	_, hasAPIVersion := decoded["apiVersion"]
	_, hasKind := decoded["kind"]
	assert.False(t, hasAPIVersion)
	assert.False(t, hasKind)
	assert.Contains(t, decoded, "metadata")
}

func TestDynamicObjectUnmarshal(t *testing.T) {
	payload := []byte(`{
		"apiVersion": "apps/v1",
		"kind": "Deployment",
		"metadata": {"name": "web", "namespace": "prod", "labels": {"app": "web"}},
		"spec": {"replicas": 2},
		"status": {"readyReplicas": 2},
		"novel": [1, 2, 3]
	}`)

	var obj DynamicObject
	assert.NoError(t, json.Unmarshal(payload, &obj))
	assert.Equal(t, &metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"}, obj.Types)
	assert.Equal(t, "web", obj.Name)
	assert.Equal(t, "prod", obj.Namespace)
	assert.Equal(t, map[string]string{"app": "web"}, obj.Labels)
	assert.Len(t, obj.Data, 3)
	assert.Contains(t, obj.Data, "spec")
	assert.Contains(t, obj.Data, "status")
	assert.Contains(t, obj.Data, "novel")
}

func TestDynamicObjectUnmarshalWithoutTypes(t *testing.T) {
	var obj DynamicObject
	assert.NoError(t, json.Unmarshal([]byte(`{"metadata":{"name":"x"},"spec":{}}`), &obj))
	assert.Nil(t, obj.Types)
	assert.Equal(t, "x", obj.Name)
}

func TestDynamicObjectRoundTrip(t *testing.T) {
	original := []byte(`{
		"apiVersion": "clux.dev/v1",
		"kind": "Foo",
		"metadata": {"name": "baz", "namespace": "myns"},
		"spec": {"nested": {"deep": [true, null, "s"]}, "count": 42},
		"unknownTopLevel": {"serverOnly": 1.5}
	}`)

	var obj DynamicObject
	assert.NoError(t, json.Unmarshal(original, &obj))
	reserialized, err := json.Marshal(obj)
	assert.NoError(t, err)

	var want, got map[string]any
	assert.NoError(t, json.Unmarshal(original, &want))
	assert.NoError(t, json.Unmarshal(reserialized, &got))
	// every key and value the server sent survives, including fields
	// this client has no knowledge of
	for key, value := range want {
		if key == "metadata" {
			continue
		}
		assert.Equal(t, value, got[key], key)
	}
	meta := got["metadata"].(map[string]any)
	assert.Equal(t, "baz", meta["name"])
	assert.Equal(t, "myns", meta["namespace"])
}

func TestDynamicObjectImplementsObject(t *testing.T) {
	ar := FromGVK(schema.GroupVersionKind{Group: "clux.dev", Version: "v1", Kind: "Foo"})
	obj := NewDynamicObject("baz", ar)
	var o Object = &obj
	assert.Equal(t, "baz", o.GetName())
	o.SetNamespace("myns")
	assert.Equal(t, "myns", obj.Namespace)
}
