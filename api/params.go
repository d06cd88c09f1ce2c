package api

import (
	"net/url"
	"strconv"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// ListParams narrows list, watch and delete-collection operations.
// The zero value selects everything.
type ListParams struct {
	LabelSelector string
	FieldSelector string
	// TimeoutSeconds bounds the server-side duration of the call.
	TimeoutSeconds uint32
	// Limit caps the number of returned items; Continue resumes an
	// earlier limited list from its continue token.
	Limit    uint32
	Continue string
	// Bookmarks asks the server to send BOOKMARK events on watches.
	Bookmarks bool
}

func (lp ListParams) query(q url.Values, forWatch bool) {
	if lp.LabelSelector != "" {
		q.Set("labelSelector", lp.LabelSelector)
	}
	if lp.FieldSelector != "" {
		q.Set("fieldSelector", lp.FieldSelector)
	}
	if lp.TimeoutSeconds != 0 {
		q.Set("timeoutSeconds", strconv.FormatUint(uint64(lp.TimeoutSeconds), 10))
	}
	if forWatch {
		if lp.Bookmarks {
			q.Set("allowWatchBookmarks", "true")
		}
		return
	}
	if lp.Limit != 0 {
		q.Set("limit", strconv.FormatUint(uint64(lp.Limit), 10))
	}
	if lp.Continue != "" {
		q.Set("continue", lp.Continue)
	}
}

// PostParams modifies create and replace operations.
type PostParams struct {
	// DryRun submits the request without persisting it.
	DryRun bool
	// FieldManager names the actor for server-side field tracking.
	FieldManager string
}

func (pp PostParams) query(q url.Values) {
	if pp.DryRun {
		q.Set("dryRun", "All")
	}
	if pp.FieldManager != "" {
		q.Set("fieldManager", pp.FieldManager)
	}
}

// PatchParams modifies patch operations. Type selects the patch strategy
// and with it the request content type; it must be one of
// types.JSONPatchType, types.MergePatchType or
// types.StrategicMergePatchType.
type PatchParams struct {
	Type         types.PatchType
	DryRun       bool
	Force        bool
	FieldManager string
}

func (pp PatchParams) query(q url.Values) {
	if pp.DryRun {
		q.Set("dryRun", "All")
	}
	if pp.Force {
		q.Set("force", "true")
	}
	if pp.FieldManager != "" {
		q.Set("fieldManager", pp.FieldManager)
	}
}

func (pp PatchParams) validate(op string) error {
	switch pp.Type {
	case types.JSONPatchType, types.MergePatchType, types.StrategicMergePatchType:
		return nil
	case "":
		return &RequestValidationError{Op: op, Reason: "patch type must be set"}
	default:
		return &RequestValidationError{Op: op, Reason: "unsupported patch type " + string(pp.Type)}
	}
}

// DeleteParams modifies delete and delete-collection operations.
type DeleteParams struct {
	DryRun             bool
	GracePeriodSeconds *int64
	// PropagationPolicy picks the dependent-deletion behavior.
	PropagationPolicy metav1.DeletionPropagation
}

func (dp DeleteParams) query(q url.Values) {
	if dp.DryRun {
		q.Set("dryRun", "All")
	}
	if dp.GracePeriodSeconds != nil {
		q.Set("gracePeriodSeconds", strconv.FormatInt(*dp.GracePeriodSeconds, 10))
	}
	if dp.PropagationPolicy != "" {
		q.Set("propagationPolicy", string(dp.PropagationPolicy))
	}
}
