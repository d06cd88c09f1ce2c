package client

import (
	"encoding/json"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/watch"
)

// Event is one watch notification.
type Event[K any] struct {
	Type   watch.EventType
	Object K
}

// WatchStream decodes a single watch response body. It is pull-based and
// single-shot: Next blocks until the server sends the next event and
// returns io.EOF when the server closes the stream. Reconnecting,
// backoff and resume-token bookkeeping are deliberately left to the
// caller.
//
// A WatchStream is not safe for concurrent Next calls.
type WatchStream[K any] struct {
	body    io.ReadCloser
	decoder *json.Decoder
}

func newWatchStream[K any](body io.ReadCloser) *WatchStream[K] {
	return &WatchStream[K]{body: body, decoder: json.NewDecoder(body)}
}

// Next returns the next event on the stream. Error events the server
// embeds in the stream are surfaced as Type watch.Error with a zero
// Object rather than as a Go error, mirroring the wire format.
func (w *WatchStream[K]) Next() (Event[K], error) {
	var raw struct {
		Type   string          `json:"type"`
		Object json.RawMessage `json:"object"`
	}
	if err := w.decoder.Decode(&raw); err != nil {
		return Event[K]{}, err
	}
	event := Event[K]{Type: watch.EventType(raw.Type)}
	if event.Type == watch.Error {
		return event, nil
	}
	if err := json.Unmarshal(raw.Object, &event.Object); err != nil {
		return Event[K]{}, fmt.Errorf("decoding %s event: %w", raw.Type, err)
	}
	return event, nil
}

// Close releases the underlying response body. Safe to call while a
// Next is blocked; the blocked call returns an error.
func (w *WatchStream[K]) Close() error {
	return w.body.Close()
}
