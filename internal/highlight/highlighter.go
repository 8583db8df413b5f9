package highlight

import (
	"sync"
	"time"

	"github.com/dshills/edkit/internal/host"
	"github.com/dshills/edkit/internal/schedule"
)

// RegionKey names the region set drawn by the highlighter.
const RegionKey = "HighlightCurrentWord"

// View settings read by the highlighter.
const (
	SettingWordSeparators = "word_separators"
	SettingThemeSelector  = "highlight_word_theme_selector"
)

// DefaultThemeSelector is the scope used to draw matches.
const DefaultThemeSelector = "comment"

// Options configures a Highlighter.
type Options struct {
	// WordSeparators is used for views without a word_separators setting.
	WordSeparators string

	// ThemeSelector is used for views without a theme selector setting.
	ThemeSelector string

	// Interval is the period of the viewport check.
	Interval time.Duration
}

// DefaultOptions returns the default highlighter options.
func DefaultOptions() Options {
	return Options{
		WordSeparators: DefaultWordSeparators,
		ThemeSelector:  DefaultThemeSelector,
		Interval:       schedule.DefaultInterval,
	}
}

// Highlighter marks every visible occurrence of the word under the cursor.
//
// Editor events force a check. The periodic tick only re-checks when the
// viewport of the active view moved since the previous check, so scrolling
// refreshes the highlights without searching on every tick.
type Highlighter struct {
	mu          sync.Mutex
	opts        Options
	previous    host.Region
	hasPrevious bool
	task        *schedule.Periodic
	onResult    func(host.View, Result)
}

// New creates a highlighter.
func New(opts Options) *Highlighter {
	return &Highlighter{opts: withDefaults(opts)}
}

// SetOptions replaces the options. A running tick picks up the new interval
// on its next reschedule.
func (h *Highlighter) SetOptions(opts Options) {
	opts = withDefaults(opts)

	h.mu.Lock()
	h.opts = opts
	task := h.task
	h.mu.Unlock()

	if task != nil {
		task.SetInterval(opts.Interval)
	}
}

// Options returns the current options.
func (h *Highlighter) Options() Options {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opts
}

// OnResult registers fn to observe every check.
func (h *Highlighter) OnResult(fn func(host.View, Result)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onResult = fn
}

// Start begins periodic checks of the view returned by active.
func (h *Highlighter) Start(scheduler host.Scheduler, active func() host.View) {
	h.mu.Lock()
	if h.task == nil {
		h.task = schedule.NewPeriodic(scheduler, h.opts.Interval, func() {
			h.Check(active(), false)
		})
	}
	task := h.task
	h.mu.Unlock()

	task.Start()
}

// Stop ends periodic checks.
func (h *Highlighter) Stop() {
	h.mu.Lock()
	task := h.task
	h.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}

// Running reports whether periodic checks are active.
func (h *Highlighter) Running() bool {
	h.mu.Lock()
	task := h.task
	h.mu.Unlock()
	return task != nil && task.Running()
}

// OnSelectionModified handles a selection change in view.
func (h *Highlighter) OnSelectionModified(view host.View) Result {
	return h.Check(view, true)
}

// OnActivated handles view gaining focus.
func (h *Highlighter) OnActivated(view host.View) Result {
	return h.Check(view, true)
}

// OnClose handles view closing.
func (h *Highlighter) OnClose(view host.View) Result {
	return h.Check(view, true)
}

// Check searches view and updates its highlighted regions.
// Unless force is set, the search is skipped when the viewport has not
// moved since the previous check. A view without selections always has
// its highlights cleared.
func (h *Highlighter) Check(view host.View, force bool) Result {
	if view == nil {
		return Result{Outcome: Skipped}
	}

	selections := view.Selections()
	if len(selections) == 0 {
		view.EraseRegions(RegionKey)
		return h.report(view, Result{Outcome: Clear})
	}

	visible := view.VisibleRegion()

	h.mu.Lock()
	if !force && h.hasPrevious && h.previous == visible {
		h.mu.Unlock()
		return Result{Outcome: Skipped}
	}
	h.previous = visible
	h.hasPrevious = true
	opts := h.opts
	h.mu.Unlock()

	seps := NewSeparators(setting(view, SettingWordSeparators, opts.WordSeparators))
	res := Search(view.Buffer(), selections, visible, seps)

	switch res.Outcome {
	case Clear:
		view.EraseRegions(RegionKey)
	case Replace:
		view.AddRegions(RegionKey, res.Regions, setting(view, SettingThemeSelector, opts.ThemeSelector))
	}

	return h.report(view, res)
}

func (h *Highlighter) report(view host.View, res Result) Result {
	h.mu.Lock()
	fn := h.onResult
	h.mu.Unlock()

	if fn != nil {
		fn(view, res)
	}
	return res
}

func setting(view host.View, key, fallback string) string {
	settings := view.Settings()
	if settings == nil {
		return fallback
	}
	if v, ok := settings.Get(key); ok {
		return v
	}
	return fallback
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.WordSeparators == "" {
		opts.WordSeparators = def.WordSeparators
	}
	if opts.ThemeSelector == "" {
		opts.ThemeSelector = def.ThemeSelector
	}
	if opts.Interval <= 0 {
		opts.Interval = def.Interval
	}
	return opts
}
