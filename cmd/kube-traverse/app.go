package main

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/klog/v2"

	"github.com/MikailBag/kube-rs/api"
	"github.com/MikailBag/kube-rs/client"
	"github.com/MikailBag/kube-rs/discovery"
)

// namespacesType is the compiled-in marker for core v1 namespaces; the
// namespace picker needs them no matter what discovery returned.
type namespacesType struct{}

func (namespacesType) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Version: "v1", Kind: "Namespace"}
}
func (namespacesType) Plural() string { return "namespaces" }

type appData struct {
	// Lifecycle
	mu          sync.RWMutex
	cancelWatch context.CancelFunc
	watchWg     sync.WaitGroup
	program     *tea.Program

	// Channels
	resourceUpdates  chan []api.DynamicObject
	namespaceUpdates chan []string
	shutdownChannels chan struct{}

	// Kube
	kube     *client.Client
	entries  []discovery.Entry
	selected *discovery.Entry

	// Tui
	list             list.Model
	gvrChoice        string
	nsChoice         string
	namespaces       []string
	objects          []api.DynamicObject
	viewport         viewport.Model
	selectedResource *api.DynamicObject
}

func newAppData() *appData {
	return &appData{
		resourceUpdates:  make(chan []api.DynamicObject, 10),
		namespaceUpdates: make(chan []string, 10),
		shutdownChannels: make(chan struct{}),
		namespaces:       []string{"all"},
	}
}

// displayName makes entries unique across groups, kubectl style:
// "deployments.apps" for named groups, "pods" for the core group.
func displayName(entry discovery.Entry) string {
	if entry.Resource.Group == "" {
		return entry.Resource.PluralName
	}
	return fmt.Sprintf("%s.%s", entry.Resource.PluralName, entry.Resource.Group)
}

func (a *appData) fetchKubeData(ctx context.Context) error {
	config, err := client.LoadConfig()
	if err != nil {
		return err
	}

	kube, err := client.New(config)
	if err != nil {
		return err
	}

	if info, err := kube.ServerVersion(ctx); err == nil {
		klog.InfoS("connected", "serverVersion", info.GitVersion)
	}

	groups, err := discovery.New(kube).Groups(ctx)
	if err != nil {
		return err
	}

	a.kube = kube
	a.entries = discovery.Listable(groups)
	return nil
}

func (a *appData) getEntryFromChoice() {
	a.mu.RLock()
	gvrChoice := a.gvrChoice
	a.mu.RUnlock()

	for i := range a.entries {
		if displayName(a.entries[i]) == gvrChoice {
			a.mu.Lock()
			a.selected = &a.entries[i]
			a.mu.Unlock()
			break
		}
	}
}

func (a *appData) convertEntriesToItemList() {
	var itemNames []string
	for _, entry := range a.entries {
		itemNames = append(itemNames, displayName(entry))
	}
	slices.Sort(itemNames)

	var items []list.Item
	for _, name := range itemNames {
		items = append(items, item(name))
	}
	a.list = initializeGvrList(items)
}

// watchNamespaces keeps the namespace picker current through a
// list-then-watch loop on core v1 namespaces.
func (a *appData) watchNamespaces(ctx context.Context) {
	namespaces := client.AllApi[api.DynamicObject](a.kube, namespacesType{})

	push := func(known map[string]struct{}) {
		nsNames := make([]string, 0, len(known))
		for name := range known {
			nsNames = append(nsNames, name)
		}
		slices.Sort(nsNames)
		nsNames = append([]string{"all"}, nsNames...)
		select {
		case a.namespaceUpdates <- nsNames:
		case <-ctx.Done():
		default:
			// Channel full, skip update
		}
	}

	go func() {
		listed, err := namespaces.List(ctx, api.ListParams{})
		if err != nil {
			klog.ErrorS(err, "listing namespaces")
			return
		}
		known := make(map[string]struct{}, len(listed.Items))
		for _, ns := range listed.Items {
			known[ns.Name] = struct{}{}
		}
		push(known)

		stream, err := namespaces.Watch(ctx, api.ListParams{}, listed.Metadata.ResourceVersion)
		if err != nil {
			klog.ErrorS(err, "watching namespaces")
			return
		}
		defer stream.Close()
		go func() {
			<-ctx.Done()
			stream.Close()
		}()

		for {
			event, err := stream.Next()
			if err != nil {
				return
			}
			switch event.Type {
			case watch.Added:
				known[event.Object.Name] = struct{}{}
			case watch.Deleted:
				delete(known, event.Object.Name)
			default:
				continue
			}
			push(known)
		}
	}()
}

func (a *appData) shutdown() {
	close(a.shutdownChannels)

	a.mu.Lock()
	if a.cancelWatch != nil {
		a.cancelWatch()
	}
	a.mu.Unlock()

	a.watchWg.Wait()

	close(a.resourceUpdates)
	close(a.namespaceUpdates)
}
