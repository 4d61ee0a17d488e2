package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/bnema/legible/internal/logging"
)

// OpenPageRequest opens or navigates a page.
type OpenPageRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// MutationRequest appends markup to a page body.
type MutationRequest struct {
	HTML string `json:"html"`
}

// LoadResponse reports what happened when a page finished loading.
type LoadResponse struct {
	PageID    port.PageID          `json:"pageId"`
	Attached  bool                 `json:"attached"`
	State     string               `json:"state"`
	Push      *usecase.PageOutcome `json:"push,omitempty"`
	PushError string               `json:"pushError,omitempty"`
}

type api struct {
	deps Dependencies
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    messaging.StatusOK,
		"pages":     a.deps.Registry.Len(),
		"listeners": a.deps.Hub.Len(),
	})
}

func (a *api) postMessage(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		writeError(w, req, fmt.Errorf("%w: %v", messaging.ErrMalformedMessage, err))
		return
	}
	resp, err := a.deps.Router.Dispatch(req.Context(), body)
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) toggleFont(w http.ResponseWriter, req *http.Request) {
	var in messaging.ToggleFontRequest
	if !decodeBody(w, req, &in) {
		return
	}
	in.Action = messaging.ActionToggleFont
	raw, _ := json.Marshal(in)

	resp, err := a.deps.Router.Dispatch(req.Context(), raw)
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) listPages(w http.ResponseWriter, req *http.Request) {
	pages, err := a.deps.Registry.ListPages(req.Context())
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (a *api) openPage(w http.ResponseWriter, req *http.Request) {
	var in OpenPageRequest
	if !decodeBody(w, req, &in) {
		return
	}
	if in.URL == "" {
		writeError(w, req, fmt.Errorf("%w: url is required", messaging.ErrMalformedMessage))
		return
	}
	writeJSON(w, http.StatusCreated, a.deps.Registry.Open(req.Context(), in.URL, in.HTML))
}

func (a *api) navigatePage(w http.ResponseWriter, req *http.Request) {
	var in OpenPageRequest
	if !decodeBody(w, req, &in) {
		return
	}
	info, err := a.deps.Registry.Navigate(req.Context(), pageID(req), in.URL, in.HTML)
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// loadPage attaches the page receiver, lets it fetch its own settings, then
// pushes the effective style from the core side.
func (a *api) loadPage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := logging.FromContext(ctx)
	id := pageID(req)

	rc, attached, err := a.deps.Registry.Attach(ctx, id)
	if err != nil {
		writeError(w, req, err)
		return
	}
	if attached && a.deps.Settings != nil {
		if err := rc.Bootstrap(ctx, a.deps.Settings); err != nil {
			log.Warn().Err(err).Str("page_id", string(id)).Msg("page could not fetch its settings")
		}
	}

	resp := LoadResponse{PageID: id, Attached: attached}
	if a.deps.Pusher != nil {
		outcome, err := a.deps.Pusher.PushToPage(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("page_id", string(id)).Msg("failed to push style to loaded page")
		}
		resp.Push = outcome
		if outcome != nil && outcome.Err != nil {
			resp.PushError = outcome.Err.Error()
		}
	}
	resp.State = rc.Applicator().State().String()

	writeJSON(w, http.StatusOK, resp)
}

func (a *api) mutatePage(w http.ResponseWriter, req *http.Request) {
	var in MutationRequest
	if !decodeBody(w, req, &in) {
		return
	}
	if err := a.deps.Registry.Mutate(pageID(req), in.HTML); err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusAccepted, messaging.Ack{Status: messaging.StatusOK})
}

func (a *api) pageDocument(w http.ResponseWriter, req *http.Request) {
	id := pageID(req)
	if _, err := a.deps.Registry.Page(req.Context(), id); err != nil {
		writeError(w, req, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := a.deps.Registry.Render(id, w); err != nil {
		logging.FromContext(req.Context()).Warn().Err(err).Msg("failed to render page document")
	}
}

func (a *api) closePage(w http.ResponseWriter, req *http.Request) {
	if err := a.deps.Registry.Close(req.Context(), pageID(req)); err != nil {
		writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pageID(req *http.Request) port.PageID {
	return port.PageID(chi.URLParam(req, "id"))
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, req, fmt.Errorf("%w: %v", messaging.ErrMalformedMessage, err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := StatusFor(err)
	log := logging.FromContext(req.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", req.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", req.URL.Path).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, messaging.ErrorResponse{Error: err.Error()})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidSettings),
		errors.Is(err, messaging.ErrMalformedMessage),
		errors.Is(err, messaging.ErrUnknownAction),
		errors.Is(err, page.ErrUnknownCommand):
		return http.StatusBadRequest
	case errors.Is(err, tabs.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, tabs.ErrNoReceiver),
		errors.Is(err, messaging.ErrInternalPage):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
