package page

import (
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/legible/internal/infrastructure/debounce"
)

// State is the applicator lifecycle state.
type State int

const (
	// Inactive means no style element is present.
	Inactive State = iota
	// Active means the style element is present and structural changes restyle.
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Default timings.
const (
	DefaultObserverDebounce = 200 * time.Millisecond
	DefaultSweepDelay       = 50 * time.Millisecond
)

// Options configure an Applicator.
type Options struct {
	StyleID          string
	FontFamily       string
	FontBaseURL      string
	ObserverDebounce time.Duration
	SweepDelay       time.Duration
}

func (o Options) withDefaults() Options {
	if o.StyleID == "" {
		o.StyleID = DefaultStyleID
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.ObserverDebounce <= 0 {
		o.ObserverDebounce = DefaultObserverDebounce
	}
	if o.SweepDelay < 0 {
		o.SweepDelay = 0
	}
	return o
}

// Applicator owns the typography style of one document. It keeps at most one
// style element in head, rewrites inline font declarations in a deferred
// sweep, and restyles after debounced structural changes while active.
type Applicator struct {
	doc  *Document
	feed ChangeFeed
	opts Options

	mu          sync.Mutex
	state       State
	params      Params
	unsubscribe func()
	// original inline style of every element the sweep rewrote
	touched map[*html.Node]*string

	observer *debounce.Debouncer
	sweep    *debounce.Debouncer
}

// NewApplicator creates an inactive applicator for doc. feed may be nil.
func NewApplicator(doc *Document, feed ChangeFeed, opts Options) *Applicator {
	opts = opts.withDefaults()
	return &Applicator{
		doc:      doc,
		feed:     feed,
		opts:     opts,
		touched:  make(map[*html.Node]*string),
		observer: debounce.New(opts.ObserverDebounce),
		sweep:    debounce.New(opts.SweepDelay),
	}
}

// State returns the current lifecycle state.
func (a *Applicator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Params returns the last applied parameters and whether the style is active.
func (a *Applicator) Params() (Params, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.params, a.state == Active
}

// Apply activates the style. On an active applicator it is an Update.
func (a *Applicator) Apply(p Params) {
	a.mu.Lock()
	if a.state == Active {
		a.mu.Unlock()
		a.Update(p)
		return
	}
	a.state = Active
	a.params = p
	if a.feed != nil {
		a.unsubscribe = a.feed.Subscribe(a.onChange)
	}
	a.mu.Unlock()

	a.writeStyle(p)
	a.scheduleSweep()
}

// Update replaces the style text in place and schedules an inline sweep.
// It does nothing while inactive.
func (a *Applicator) Update(p Params) {
	a.mu.Lock()
	if a.state != Active {
		a.mu.Unlock()
		return
	}
	a.params = p
	a.mu.Unlock()

	a.writeStyle(p)
	a.scheduleSweep()
}

// Remove deletes the style element, restores rewritten inline styles and
// stops observing changes. It is a no-op while inactive.
func (a *Applicator) Remove() {
	a.mu.Lock()
	if a.state != Active {
		a.mu.Unlock()
		return
	}
	a.state = Inactive
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	touched := a.touched
	a.touched = make(map[*html.Node]*string)
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	a.observer.Cancel()
	a.sweep.Cancel()

	a.doc.Edit(func(root *html.Node) {
		if el := findByID(root, a.opts.StyleID); el != nil && el.Parent != nil {
			el.Parent.RemoveChild(el)
		}
		for n, orig := range touched {
			if orig == nil {
				removeAttr(n, "style")
			} else {
				setAttr(n, "style", *orig)
			}
		}
	})
}

// Settle runs any pending restyle and sweep immediately.
func (a *Applicator) Settle() {
	a.observer.Flush()
	a.sweep.Flush()
}

func (a *Applicator) onChange() {
	a.observer.Trigger(func() {
		p, active := a.Params()
		if active {
			a.Update(p)
		}
	})
}

func (a *Applicator) writeStyle(p Params) {
	text := BuildCSS(a.opts.FontFamily, a.opts.FontBaseURL, p)

	a.doc.Edit(func(root *html.Node) {
		el := findByID(root, a.opts.StyleID)
		if el == nil {
			head := findElement(root, atom.Head)
			if head == nil {
				return
			}
			el = &html.Node{
				Type:     html.ElementNode,
				Data:     "style",
				DataAtom: atom.Style,
				Attr:     []html.Attribute{{Key: "id", Val: a.opts.StyleID}},
			}
			head.AppendChild(el)
		}
		for c := el.FirstChild; c != nil; c = el.FirstChild {
			el.RemoveChild(c)
		}
		el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	})
}

func (a *Applicator) scheduleSweep() {
	a.sweep.Trigger(a.runSweep)
}

func (a *Applicator) runSweep() {
	p, active := a.Params()
	if !active {
		return
	}
	stack := FontStack(a.opts.FontFamily)

	a.doc.Edit(func(root *html.Node) {
		body := findElement(root, atom.Body)
		if body == nil {
			return
		}
		for _, n := range sweepTargets(body) {
			style := attr(n, "style")
			rewritten, changed := rewriteInline(style, stack, p)
			if !changed {
				continue
			}
			if !a.remember(n) {
				return
			}
			setAttr(n, "style", rewritten)
		}
	})
}

// remember records n's original inline style. It reports false once the
// applicator has been removed, so a late sweep leaves the tree alone.
func (a *Applicator) remember(n *html.Node) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Active {
		return false
	}
	if _, ok := a.touched[n]; ok {
		return true
	}
	if hasAttr(n, "style") {
		orig := attr(n, "style")
		a.touched[n] = &orig
		return true
	}
	a.touched[n] = nil
	return true
}

// detach stops observing and drops pending work, leaving the DOM as is.
func (a *Applicator) detach() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.state = Inactive
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	a.observer.Cancel()
	a.sweep.Cancel()
}
