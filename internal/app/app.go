// Package app binds the clipboard history, the current-word highlighter and
// the navigation history to a host editor.
//
// The host forwards its editor events to the Handle* methods and its command
// invocations to RunCommand. App owns every piece of state; nothing is kept
// in package globals.
package app

import (
	"fmt"
	"sync"

	"github.com/dshills/edkit/internal/clipring"
	"github.com/dshills/edkit/internal/config"
	"github.com/dshills/edkit/internal/highlight"
	"github.com/dshills/edkit/internal/host"
	"github.com/dshills/edkit/internal/navhistory"
)

// Navigation command names bound by the host.
const (
	CommandNavigateBack    = "navigation_history_back"
	CommandNavigateForward = "navigation_history_forward"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// App coordinates the editor utilities for one host.
type App struct {
	mu      sync.Mutex
	host    host.Host
	cfg     *config.Config
	logger  *Logger
	running bool

	clip *clipring.Commands
	hl   *highlight.Highlighter
	nav  *navhistory.Registry

	lastHighlight highlight.Result
}

// New creates an App for h configured by cfg. A nil cfg uses the defaults.
func New(h host.Host, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		host:   h,
		cfg:    cfg,
		logger: NewNullLogger(),
		clip:   clipring.NewCommands(clipring.NewRing(cfg.Clipboard.Capacity), h.Clipboard()),
		hl:     highlight.New(cfg.HighlightOptions()),
		nav:    navhistory.NewRegistry(cfg.Navigation.Capacity, cfg.Navigation.LineThreshold),
	}
	for _, opt := range opts {
		opt(a)
	}

	hlLog := a.logger.WithComponent("highlight")
	a.hl.OnResult(func(view host.View, res highlight.Result) {
		a.mu.Lock()
		a.lastHighlight = res
		a.mu.Unlock()
		hlLog.Debug("%s %q in %s: %d regions", res.Outcome, res.Word, view.FileName(), len(res.Regions))
	})

	return a, nil
}

// Host returns the host the app is bound to.
func (a *App) Host() host.Host { return a.host }

// Logger returns the app logger.
func (a *App) Logger() *Logger { return a.logger }

// Clipboard returns the clipboard history commands.
func (a *App) Clipboard() *clipring.Commands { return a.clip }

// ClipboardRing returns the clipboard history.
func (a *App) ClipboardRing() *clipring.Ring { return a.clip.Ring() }

// Highlighter returns the current-word highlighter.
func (a *App) Highlighter() *highlight.Highlighter { return a.hl }

// Navigation returns the per-window navigation histories.
func (a *App) Navigation() *navhistory.Registry { return a.nav }

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Start begins the highlighter's periodic checks when highlighting is
// enabled.
func (a *App) Start() error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	enabled := a.cfg.Highlight.Enabled
	a.mu.Unlock()

	if enabled {
		a.hl.Start(a.host.Scheduler(), a.activeView)
	}
	a.logger.Info("started")
	return nil
}

// Stop ends the periodic checks.
func (a *App) Stop() error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return ErrNotRunning
	}
	a.running = false
	a.mu.Unlock()

	a.hl.Stop()
	a.logger.Info("stopped")
	return nil
}

// Running reports whether Start has been called without a matching Stop.
func (a *App) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Reconfigure applies cfg to the running utilities. Existing history is
// kept, trimmed to the new capacities where needed.
func (a *App) Reconfigure(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	running := a.running
	a.mu.Unlock()

	a.clip.Ring().SetCapacity(cfg.Clipboard.Capacity)
	a.nav.SetLimits(cfg.Navigation.Capacity, cfg.Navigation.LineThreshold)
	a.hl.SetOptions(cfg.HighlightOptions())
	a.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if running {
		if cfg.Highlight.Enabled {
			a.hl.Start(a.host.Scheduler(), a.activeView)
		} else {
			a.hl.Stop()
		}
	}

	a.logger.Info("configuration applied")
	return nil
}

// HandleSelectionModified records cursor movement in window and refreshes
// the highlights of view.
func (a *App) HandleSelectionModified(window host.Window, view host.View) {
	if window != nil && view != nil {
		if loc, ok := cursorLocation(view); ok {
			a.nav.ForWindow(window.ID()).RecordMovement(loc.Path, loc.Line)
		}
	}
	if a.highlightEnabled() {
		a.hl.OnSelectionModified(view)
	}
}

// HandleActivated refreshes the highlights of a view that gained focus.
func (a *App) HandleActivated(view host.View) {
	if a.highlightEnabled() {
		a.hl.OnActivated(view)
	}
}

// HandleClosed refreshes the highlights of a closing view.
func (a *App) HandleClosed(view host.View) {
	if a.highlightEnabled() {
		a.hl.OnClose(view)
	}
}

// HandleWindowClosed drops the navigation history of a closed window unless
// configured to keep it.
func (a *App) HandleWindowClosed(windowID string) {
	if !a.Config().Navigation.ForgetClosedWindows {
		return
	}
	if a.nav.Forget(windowID) {
		a.logger.WithField("window", windowID).Debug("navigation history dropped")
	}
}

// PruneHistories drops the navigation history of every window the host no
// longer has open. It returns the number dropped.
func (a *App) PruneHistories() int {
	windows := a.host.Windows()
	open := make([]string, len(windows))
	for i, w := range windows {
		open[i] = w.ID()
	}
	return a.nav.Prune(open)
}

// Commands returns every command name RunCommand accepts.
func (a *App) Commands() []string {
	return append(a.clip.Names(), CommandNavigateBack, CommandNavigateForward)
}

// RunCommand runs the named command in the active window.
func (a *App) RunCommand(name string) error {
	window, view, err := a.active()
	if err != nil {
		return err
	}

	switch name {
	case CommandNavigateBack:
		_, _, err = a.navigate(window, view, true)
		return err
	case CommandNavigateForward:
		_, _, err = a.navigate(window, view, false)
		return err
	}

	if !a.isClipboardCommand(name) {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if err := a.clip.Run(name, view, window); err != nil {
		opErr := NewOperationError(name, view.FileName(), err)
		a.logger.WithComponent("clipboard").Error("%v", opErr)
		return opErr
	}
	return nil
}

// ChooseClipboard selects the entry at index and places it on the clipboard.
func (a *App) ChooseClipboard(index int) error {
	if err := a.clip.Choose(index); err != nil {
		return NewOperationError("choose", fmt.Sprint(index), err)
	}
	return nil
}

// NavigateBack moves the active window one step back and opens the
// resulting location. ok is false when there was nowhere to go.
func (a *App) NavigateBack() (host.Location, bool, error) {
	window, view, err := a.active()
	if err != nil {
		return host.Location{}, false, err
	}
	return a.navigate(window, view, true)
}

// NavigateForward is the inverse of NavigateBack.
func (a *App) NavigateForward() (host.Location, bool, error) {
	window, view, err := a.active()
	if err != nil {
		return host.Location{}, false, err
	}
	return a.navigate(window, view, false)
}

// RecordMovement records a cursor move in the active window.
func (a *App) RecordMovement(path string, line int) error {
	window := a.host.ActiveWindow()
	if window == nil {
		return ErrNoActiveWindow
	}
	a.nav.ForWindow(window.ID()).RecordMovement(path, line)
	return nil
}

// History returns the navigation history of the active window.
func (a *App) History() (*navhistory.History, error) {
	window := a.host.ActiveWindow()
	if window == nil {
		return nil, ErrNoActiveWindow
	}
	return a.nav.ForWindow(window.ID()), nil
}

// RefreshHighlight forces a highlight check of the active view.
func (a *App) RefreshHighlight() highlight.Result {
	return a.hl.Check(a.activeView(), true)
}

// LastHighlight returns the outcome of the most recent highlight check.
func (a *App) LastHighlight() highlight.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastHighlight
}

func (a *App) navigate(window host.Window, view host.View, back bool) (host.Location, bool, error) {
	hist := a.nav.ForWindow(window.ID())

	current, ok := cursorLocation(view)
	if !ok {
		current, _ = hist.LastLocation()
	}

	var loc host.Location
	if back {
		loc, ok = hist.Back(current)
	} else {
		loc, ok = hist.Forward(current)
	}

	log := a.logger.WithComponent("navigation").WithField("window", window.ID())
	if !ok {
		log.Debug("nothing to navigate to")
		return host.Location{}, false, nil
	}

	if err := window.OpenFileAt(loc.Path, loc.Line); err != nil {
		opErr := NewOperationError("open", loc.String(), err)
		log.Error("%v", opErr)
		return loc, true, opErr
	}
	log.Debug("jumped to %s", loc)

	// The jump may land in another view or move the cursor off the word.
	a.HandleActivated(window.ActiveView())
	return loc, true, nil
}

func (a *App) active() (host.Window, host.View, error) {
	window := a.host.ActiveWindow()
	if window == nil {
		return nil, nil, ErrNoActiveWindow
	}
	view := window.ActiveView()
	if view == nil {
		return window, nil, ErrNoActiveView
	}
	return window, view, nil
}

func (a *App) activeView() host.View {
	_, view, err := a.active()
	if err != nil {
		return nil
	}
	return view
}

func (a *App) highlightEnabled() bool {
	return a.Config().Highlight.Enabled
}

func (a *App) isClipboardCommand(name string) bool {
	for _, n := range a.clip.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// cursorLocation is the file and 1-based line of view's primary selection.
func cursorLocation(view host.View) (host.Location, bool) {
	sels := view.Selections()
	if len(sels) == 0 || view.FileName() == "" {
		return host.Location{}, false
	}
	row, _ := view.RowCol(sels[0].Start)
	return host.Location{Path: view.FileName(), Line: row + 1}, true
}
