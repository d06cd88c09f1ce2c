// configmap-watcher follows ConfigMap changes in one namespace and logs
// every event. NAMESPACE selects the namespace, defaulting to "default".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/klog/v2"

	"github.com/MikailBag/kube-rs/api"
	"github.com/MikailBag/kube-rs/client"
)

// configMapsType is the compiled-in descriptor for core v1 configmaps.
type configMapsType struct{}

func (configMapsType) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Version: "v1", Kind: "ConfigMap"}
}
func (configMapsType) Plural() string { return "configmaps" }

func main() {
	klog.InitFlags(nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		klog.ErrorS(err, "watcher stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config, err := client.LoadConfig()
	if err != nil {
		return err
	}
	kube, err := client.New(config)
	if err != nil {
		return err
	}

	namespace := os.Getenv("NAMESPACE")
	if namespace == "" {
		namespace = "default"
	}

	cms := client.NamespacedApi[corev1.ConfigMap](kube, namespace, configMapsType{})
	lp := api.ListParams{Bookmarks: true}

	for {
		listed, err := cms.List(ctx, lp)
		if err != nil {
			return err
		}
		for _, cm := range listed.Items {
			klog.InfoS("existing", "namespace", cm.Namespace, "name", cm.Name, "keys", len(cm.Data))
		}

		stream, err := cms.Watch(ctx, lp, listed.Metadata.ResourceVersion)
		if err != nil {
			return err
		}
		go func() {
			<-ctx.Done()
			stream.Close()
		}()

		for {
			event, err := stream.Next()
			if err != nil {
				break
			}
			klog.InfoS("got event",
				"type", event.Type,
				"namespace", event.Object.Namespace,
				"name", event.Object.Name,
				"keys", len(event.Object.Data))
		}
		stream.Close()

		if ctx.Err() != nil {
			return nil
		}
		klog.V(2).InfoS("stream ended, relisting")
	}
}
