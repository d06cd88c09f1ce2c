package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"

	"github.com/MikailBag/kube-rs/api"
)

// Lister is the transport-side collaborator discovery needs: the raw
// group-version and resource-list endpoints. *client.Client satisfies it.
type Lister interface {
	ServerGroupVersions(ctx context.Context) ([]string, error)
	ListAPIGroupResources(ctx context.Context, groupVersion string) (*metav1.APIResourceList, error)
}

// Entry pairs a resolved descriptor with its discovery extras.
type Entry struct {
	Resource api.ApiResource
	Extras   ApiResourceExtras
}

// Group holds every resolved top-level resource of one group-version.
type Group struct {
	GroupVersion string
	Entries      []Entry
}

// Discovery enumerates everything the server currently serves. The
// per-group-version resolution itself is pure; only the fetches go
// through the Lister.
type Discovery struct {
	lister Lister
	log    logr.Logger
}

func New(lister Lister) *Discovery {
	return &Discovery{
		lister: lister,
		log:    klog.Background().WithName("discovery"),
	}
}

// WithLogger returns a Discovery that logs skipped group-versions to log.
func (d *Discovery) WithLogger(log logr.Logger) *Discovery {
	return &Discovery{lister: d.lister, log: log}
}

// Groups fetches and resolves every group-version the server reports.
// A group-version whose resource list cannot be fetched is logged and
// skipped rather than failing the whole walk; aggregated API servers go
// away routinely.
func (d *Discovery) Groups(ctx context.Context) ([]Group, error) {
	gvs, err := d.lister.ServerGroupVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing server group versions: %w", err)
	}

	groups := make([]Group, 0, len(gvs))
	for _, gv := range gvs {
		list, err := d.lister.ListAPIGroupResources(ctx, gv)
		if err != nil {
			d.log.V(1).Info("skipping group-version", "groupVersion", gv, "reason", err)
			continue
		}
		entries, err := Resolve(list)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", gv, err)
		}
		groups = append(groups, Group{GroupVersion: gv, Entries: entries})
	}
	return groups, nil
}

// Resolve converts one group-version's flat resource list into resolved
// top-level entries with their subresources attached. Entry order
// follows the server's list order.
func Resolve(list *metav1.APIResourceList) ([]Entry, error) {
	var entries []Entry
	for i := range list.APIResources {
		record := &list.APIResources[i]
		if strings.Contains(record.Name, "/") {
			// subresources are attached below their parent
			continue
		}
		extras, err := ResolveExtras(list, record.Name)
		if err != nil {
			return nil, err
		}
		resource := api.FromAPIResource(record, list.GroupVersion)
		for _, sub := range extras.Subresources {
			resource.Subresources = append(resource.Subresources, sub.Resource.PluralName)
		}
		entries = append(entries, Entry{Resource: resource, Extras: extras})
	}
	return entries, nil
}

// Listable filters the walk down to resources a browser can enumerate:
// top-level entries whose server-reported verbs include list.
func Listable(groups []Group) []Entry {
	var entries []Entry
	for _, group := range groups {
		for _, entry := range group.Entries {
			if entry.Extras.Operations.List {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}
