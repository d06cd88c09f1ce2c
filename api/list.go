package api

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ObjectList is the standard list envelope returned by list operations.
type ObjectList[K any] struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        metav1.ListMeta `json:"metadata,omitempty"`
	Items           []K             `json:"items"`
}
