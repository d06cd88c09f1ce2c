package api

import (
	"bytes"
	"encoding/json"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DynamicObject is a single object of any non-list resource type,
// carried without a compiled-in schema.
//
// On the wire it is the standard object envelope: the type fields and
// "metadata" sit at the top level next to every payload key, nothing is
// nested under a data key. Deserializing a server object and serializing
// it again reproduces every field the server sent, including ones this
// client knows nothing about.
type DynamicObject struct {
	// Types holds apiVersion/kind. Not always present: list items and
	// some internal contexts omit them, in which case Types is nil and
	// the keys are left out entirely on re-serialization.
	Types *metav1.TypeMeta

	metav1.ObjectMeta

	// Data holds every top-level field outside the type/metadata
	// envelope, passed through untouched.
	Data map[string]any
}

// NewDynamicObject returns an object with minimal fields set from the
// resource type: apiVersion, kind and metadata.name.
func NewDynamicObject(name string, rt ResourceType) DynamicObject {
	return DynamicObject{
		Types: &metav1.TypeMeta{
			APIVersion: APIVersionFor(rt),
			Kind:       rt.GroupVersionKind().Kind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
}

// WithData returns a copy of the object carrying data as its payload.
func (o DynamicObject) WithData(data map[string]any) DynamicObject {
	o.Data = data
	return o
}

// WithNamespace returns a copy of the object placed in namespace ns.
func (o DynamicObject) WithNamespace(ns string) DynamicObject {
	o.Namespace = ns
	return o
}

func (o DynamicObject) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(o.Data)+3)
	for key, value := range o.Data {
		switch key {
		case "apiVersion", "kind", "metadata":
			// envelope keys never live in the payload
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		out[key] = raw
	}
	if o.Types != nil {
		if o.Types.APIVersion != "" {
			raw, err := json.Marshal(o.Types.APIVersion)
			if err != nil {
				return nil, err
			}
			out["apiVersion"] = raw
		}
		if o.Types.Kind != "" {
			raw, err := json.Marshal(o.Types.Kind)
			if err != nil {
				return nil, err
			}
			out["kind"] = raw
		}
	}
	meta, err := json.Marshal(o.ObjectMeta)
	if err != nil {
		return nil, err
	}
	out["metadata"] = meta
	return json.Marshal(out)
}

func (o *DynamicObject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var types metav1.TypeMeta
	hasTypes := false
	if v, ok := raw["apiVersion"]; ok {
		if err := json.Unmarshal(v, &types.APIVersion); err != nil {
			return err
		}
		hasTypes = true
		delete(raw, "apiVersion")
	}
	if v, ok := raw["kind"]; ok {
		if err := json.Unmarshal(v, &types.Kind); err != nil {
			return err
		}
		hasTypes = true
		delete(raw, "kind")
	}
	o.Types = nil
	if hasTypes {
		o.Types = &types
	}

	o.ObjectMeta = metav1.ObjectMeta{}
	if v, ok := raw["metadata"]; ok {
		if err := json.Unmarshal(v, &o.ObjectMeta); err != nil {
			return err
		}
		delete(raw, "metadata")
	}

	o.Data = make(map[string]any, len(raw))
	for key, value := range raw {
		// json.Number keeps numeric payload values intact on re-encode
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		var decoded any
		if err := dec.Decode(&decoded); err != nil {
			return err
		}
		o.Data[key] = decoded
	}
	return nil
}
