package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/legible/internal/logging"
)

const keepAliveInterval = 15 * time.Second

// streamEvents serves SETTINGS_UPDATED as server-sent events until the
// client goes away.
func (a *api) streamEvents(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := req.Context()
	log := logging.FromContext(ctx)

	name := req.URL.Query().Get("client")
	if name == "" {
		name = "ui"
	}
	id, events, cancel := a.deps.Hub.Subscribe(name)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, ": subscribed %s\n\n", id)
	flusher.Flush()

	log.Debug().Str("subscriber", id).Str("client", name).Msg("event stream opened")
	defer log.Debug().Str("subscriber", id).Msg("event stream closed")

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Warn().Err(err).Msg("failed to encode settings event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Action, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
