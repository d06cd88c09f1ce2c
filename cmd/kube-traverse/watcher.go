package main

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/klog/v2"

	"github.com/MikailBag/kube-rs/api"
	"github.com/MikailBag/kube-rs/client"
	"github.com/MikailBag/kube-rs/discovery"
)

// runWatcher starts streaming the selected resource into the TUI,
// replacing whatever stream the previous selection had running.
func (m *model) runWatcher() tea.Cmd {
	return func() tea.Msg {
		// Moving Wait() inside the return function ensures it runs
		// in a background goroutine, not the main UI thread.
		m.entity.Data.mu.Lock()
		if m.entity.Data.cancelWatch != nil {
			m.entity.Data.cancelWatch()
			m.entity.Data.mu.Unlock()
			m.entity.Data.watchWg.Wait()
		} else {
			m.entity.Data.mu.Unlock()
		}

		ctx, cancel := context.WithCancel(context.Background())

		m.entity.Data.mu.Lock()
		m.entity.Data.cancelWatch = cancel
		selected := m.entity.Data.selected
		m.entity.Data.mu.Unlock()

		if selected == nil {
			return nil
		}

		if !selected.Extras.Operations.Watch {
			m.entity.Data.watchWg.Go(func() {
				m.startPolling(ctx)
			})
			return nil
		}

		m.entity.Data.watchWg.Go(func() {
			m.streamResources(ctx, *selected)
		})
		return nil
	}
}

func objectKey(obj api.DynamicObject) string {
	return obj.Namespace + "/" + obj.Name
}

// streamResources lists the collection once, then applies watch events
// to the snapshot until the stream ends. There is no reconnect: picking
// the resource again starts a fresh stream.
func (m *model) streamResources(ctx context.Context, selected discovery.Entry) {
	d := m.entity.Data
	resources := client.AllApi[api.DynamicObject](d.kube, selected.Resource)

	listed, err := resources.List(ctx, api.ListParams{})
	if err != nil {
		klog.ErrorS(err, "listing resources", "resource", selected.Resource.PluralName)
		return
	}
	objects := make(map[string]api.DynamicObject, len(listed.Items))
	for _, obj := range listed.Items {
		objects[objectKey(obj)] = obj
	}
	m.pushResources(ctx, objects)

	stream, err := resources.Watch(ctx, api.ListParams{Bookmarks: true}, listed.Metadata.ResourceVersion)
	if err != nil {
		klog.ErrorS(err, "watching resources", "resource", selected.Resource.PluralName)
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
		case watch.Added, watch.Modified:
			objects[objectKey(event.Object)] = event.Object
		case watch.Deleted:
			delete(objects, objectKey(event.Object))
		default:
			continue
		}
		m.pushResources(ctx, objects)
	}
}

func (m *model) pushResources(ctx context.Context, objects map[string]api.DynamicObject) {
	snapshot := make([]api.DynamicObject, 0, len(objects))
	for _, obj := range objects {
		snapshot = append(snapshot, obj)
	}
	slices.SortFunc(snapshot, func(a, b api.DynamicObject) int {
		return strings.Compare(objectKey(a), objectKey(b))
	})

	select {
	case m.entity.Data.resourceUpdates <- snapshot:
	case <-ctx.Done():
	default:
		// Channel full, skip
	}
}

func (m *model) pullResourcesOnce(ctx context.Context) {
	m.entity.Data.mu.RLock()
	selected := m.entity.Data.selected
	m.entity.Data.mu.RUnlock()

	if selected == nil {
		return
	}

	resources := client.AllApi[api.DynamicObject](m.entity.Data.kube, selected.Resource)
	listed, err := resources.List(ctx, api.ListParams{})
	if err != nil {
		return
	}

	objects := make(map[string]api.DynamicObject, len(listed.Items))
	for _, obj := range listed.Items {
		objects[objectKey(obj)] = obj
	}
	m.pushResources(ctx, objects)
}

// startPolling covers listable resources whose verbs do not include
// watch.
func (m *model) startPolling(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	// Initial pull
	m.pullResourcesOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.pullResourcesOnce(ctx)
		}
	}
}
