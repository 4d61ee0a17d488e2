// Package tabs tracks the open pages of the host and routes style commands
// to the receiver loaded in each one.
package tabs

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/logging"
)

var (
	// ErrPageNotFound is returned for an unknown page ID.
	ErrPageNotFound = errors.New("page not found")
	// ErrNoReceiver is returned when a page has no receiver loaded yet.
	ErrNoReceiver = errors.New("page has no receiver")
)

type tab struct {
	id       port.PageID
	url      string
	html     string
	order    uint64
	receiver *page.Context
}

// Registry is the host's view of open pages.
type Registry struct {
	opts page.Options

	mu    sync.RWMutex
	tabs  map[port.PageID]*tab
	order uint64
}

var (
	_ port.PageRegistry  = (*Registry)(nil)
	_ port.PageMessenger = (*Registry)(nil)
)

// NewRegistry creates an empty registry. opts configure every page receiver.
func NewRegistry(opts page.Options) *Registry {
	return &Registry{
		opts: opts,
		tabs: make(map[port.PageID]*tab),
	}
}

// Open registers a page with its URL and initial markup. No receiver is
// attached until Attach.
func (r *Registry) Open(ctx context.Context, rawURL, markup string) port.PageInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order++
	t := &tab{
		id:    port.PageID(uuid.NewString()),
		url:   rawURL,
		html:  markup,
		order: r.order,
	}
	r.tabs[t.id] = t

	logging.FromContext(ctx).Debug().Str("page_id", string(t.id)).Str("url", rawURL).Msg("page opened")
	return port.PageInfo{ID: t.id, URL: t.url}
}

// Attach parses the page markup and loads a receiver into it. A page that
// already has one keeps it and reports attached=false.
func (r *Registry) Attach(ctx context.Context, id port.PageID) (*page.Context, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if t.receiver != nil {
		return t.receiver, false, nil
	}

	doc, err := page.ParseDocumentString(t.html)
	if err != nil {
		return nil, false, err
	}
	t.receiver = page.NewContext(t.url, doc, r.opts)

	logging.FromContext(ctx).Debug().Str("page_id", string(id)).Str("site", t.receiver.Site()).Msg("receiver attached")
	return t.receiver, true, nil
}

// Navigate points the page at a new URL and markup. The old receiver is
// dropped; the new document has none until Attach.
func (r *Registry) Navigate(ctx context.Context, id port.PageID, rawURL, markup string) (port.PageInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return port.PageInfo{}, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if t.receiver != nil {
		t.receiver.Detach()
		t.receiver = nil
	}
	t.url = rawURL
	t.html = markup

	logging.FromContext(ctx).Debug().Str("page_id", string(id)).Str("url", rawURL).Msg("page navigated")
	return port.PageInfo{ID: id, URL: rawURL}, nil
}

// Close forgets the page.
func (r *Registry) Close(ctx context.Context, id port.PageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tabs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if t.receiver != nil {
		t.receiver.Detach()
	}
	delete(r.tabs, id)

	logging.FromContext(ctx).Debug().Str("page_id", string(id)).Msg("page closed")
	return nil
}

// Receiver returns the receiver loaded in the page.
func (r *Registry) Receiver(id port.PageID) (*page.Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if t.receiver == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoReceiver, id)
	}
	return t.receiver, nil
}

// Mutate appends markup to a loaded page, as a script on the page would.
func (r *Registry) Mutate(id port.PageID, fragment string) error {
	rc, err := r.Receiver(id)
	if err != nil {
		return err
	}
	return rc.InsertHTML(fragment)
}

// Render writes the current document of the page. Pages without a receiver
// render their original markup.
func (r *Registry) Render(id port.PageID, w io.Writer) error {
	r.mu.RLock()
	t, ok := r.tabs[id]
	var rc *page.Context
	var markup string
	if ok {
		rc = t.receiver
		markup = t.html
	}
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	if rc == nil {
		_, err := io.WriteString(w, markup)
		return err
	}
	return rc.Render(w)
}

// ListPages implements port.PageRegistry, in opening order.
func (r *Registry) ListPages(_ context.Context) ([]port.PageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tabs := make([]*tab, 0, len(r.tabs))
	for _, t := range r.tabs {
		tabs = append(tabs, t)
	}
	slices.SortFunc(tabs, func(a, b *tab) int {
		return cmp.Compare(a.order, b.order)
	})

	pages := make([]port.PageInfo, len(tabs))
	for i, t := range tabs {
		pages[i] = port.PageInfo{ID: t.id, URL: t.url}
	}
	return pages, nil
}

// Page implements port.PageRegistry.
func (r *Registry) Page(_ context.Context, id port.PageID) (port.PageInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tabs[id]
	if !ok {
		return port.PageInfo{}, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return port.PageInfo{ID: t.id, URL: t.url}, nil
}

// SendToPage implements port.PageMessenger.
func (r *Registry) SendToPage(ctx context.Context, id port.PageID, cmd port.StyleCommand) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rc, err := r.Receiver(id)
	if err != nil {
		return err
	}
	return rc.HandleStyleCommand(ctx, cmd)
}

// Len returns the number of open pages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

// ParseID validates a page ID taken from user input.
func ParseID(s string) (port.PageID, error) {
	s = strings.TrimSpace(s)
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, s)
	}
	return port.PageID(s), nil
}
