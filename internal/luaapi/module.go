// Package luaapi exposes the edkit utilities to Lua scripts.
//
// Scripts load the API with:
//
//	local edkit = require("edkit")
//	edkit.clip.copy()
//	edkit.nav.back()
//	edkit.hl.tick(3)
//
// Each submodule is a Module registered with a Registry. Install places the
// registered modules into a Lua state under the "edkit" preload.
package luaapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edkit/internal/clipring"
	"github.com/dshills/edkit/internal/highlight"
	"github.com/dshills/edkit/internal/host"
	"github.com/dshills/edkit/internal/navhistory"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "edkit"

// APIVersion is reported to scripts as edkit.api_version.
const APIVersion = 1

// Module represents a Lua API module.
type Module interface {
	// Name returns the field name under the edkit table (e.g. "clip").
	Name() string

	// Register builds the module table in L.
	Register(L *lua.LState) (*lua.LTable, error)
}

// Editor is the editor state the modules drive.
type Editor interface {
	RunCommand(name string) error
	ClipboardRing() *clipring.Ring
	ChooseClipboard(index int) error
	NavigateBack() (host.Location, bool, error)
	NavigateForward() (host.Location, bool, error)
	RecordMovement(path string, line int) error
	History() (*navhistory.History, error)
	Highlighter() *highlight.Highlighter
	RefreshHighlight() highlight.Result
	LastHighlight() highlight.Result
}

// Clock advances simulated host time.
type Clock interface {
	Advance(d time.Duration) int
}

// Views moves the cursor and opens files in the active window, firing the
// same events a user would.
type Views interface {
	Open(path string, line int) error
	Select(start, end int) error
	GotoLine(line int) error
	Line() (int, error)
	Text() (string, error)
	FileName() (string, error)
}

// Registry manages API modules.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns the registered module names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install builds every module and preloads the edkit table into L.
func (r *Registry) Install(L *lua.LState) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	root := L.NewTable()
	for name, mod := range r.modules {
		tbl, err := mod.Register(L)
		if err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
		L.SetField(root, name, tbl)
	}
	L.SetField(root, "api_version", lua.LNumber(APIVersion))

	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(root)
		return 1
	})
	return nil
}

// DefaultRegistry registers the clip, nav and hl modules over editor. The
// view module is added when views is non-nil, and hl.tick needs clock.
func DefaultRegistry(editor Editor, views Views, clock Clock) (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewClipModule(editor),
		NewNavModule(editor),
		NewHighlightModule(editor, clock),
	}
	if views != nil {
		modules = append(modules, NewViewModule(views))
	}

	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// locationTable converts loc to {path = ..., line = ...}.
func locationTable(L *lua.LState, loc host.Location) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "path", lua.LString(loc.Path))
	L.SetField(tbl, "line", lua.LNumber(loc.Line))
	return tbl
}

// stringList converts items to a Lua array.
func stringList(L *lua.LState, items []string) *lua.LTable {
	tbl := L.CreateTable(len(items), 0)
	for i, item := range items {
		tbl.RawSetInt(i+1, lua.LString(item))
	}
	return tbl
}
