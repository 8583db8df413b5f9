package luaapi

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edkit/internal/highlight"
)

// HighlightModule implements edkit.hl, the current-word highlighter.
type HighlightModule struct {
	editor Editor
	clock  Clock
}

// NewHighlightModule creates the hl module. clock may be nil, in which case
// hl.tick raises an error.
func NewHighlightModule(editor Editor, clock Clock) *HighlightModule {
	return &HighlightModule{editor: editor, clock: clock}
}

// Name returns the module name.
func (m *HighlightModule) Name() string {
	return "hl"
}

// Register builds the module table.
func (m *HighlightModule) Register(L *lua.LState) (*lua.LTable, error) {
	mod := L.NewTable()

	L.SetField(mod, "refresh", L.NewFunction(m.refresh))
	L.SetField(mod, "last", L.NewFunction(m.last))
	L.SetField(mod, "regions", L.NewFunction(m.regions))
	L.SetField(mod, "tick", L.NewFunction(m.tick))
	L.SetField(mod, "running", L.NewFunction(m.running))

	return mod, nil
}

// refresh() -> outcome, word
// Forces a check of the active view.
func (m *HighlightModule) refresh(L *lua.LState) int {
	return pushResult(L, m.editor.RefreshHighlight())
}

// last() -> outcome, word
func (m *HighlightModule) last(L *lua.LState) int {
	return pushResult(L, m.editor.LastHighlight())
}

// regions() -> {{start, end}...}
// Offsets are 0-based and half-open, as the host reports them.
func (m *HighlightModule) regions(L *lua.LState) int {
	res := m.editor.LastHighlight()

	tbl := L.CreateTable(len(res.Regions), 0)
	for i, r := range res.Regions {
		pair := L.CreateTable(2, 0)
		pair.RawSetInt(1, lua.LNumber(r.Start))
		pair.RawSetInt(2, lua.LNumber(r.End))
		tbl.RawSetInt(i+1, pair)
	}
	L.Push(tbl)
	return 1
}

// tick(n) -> callbacks run
// Advances host time by n highlight intervals.
func (m *HighlightModule) tick(L *lua.LState) int {
	n := L.OptInt(1, 1)
	if n < 0 {
		L.ArgError(1, "tick count must not be negative")
		return 0
	}
	if m.clock == nil {
		L.RaiseError("tick: host time cannot be advanced")
		return 0
	}

	interval := m.editor.Highlighter().Options().Interval
	ran := 0
	for i := 0; i < n; i++ {
		ran += m.clock.Advance(interval)
	}
	L.Push(lua.LNumber(ran))
	return 1
}

// running() -> bool
func (m *HighlightModule) running(L *lua.LState) int {
	L.Push(lua.LBool(m.editor.Highlighter().Running()))
	return 1
}

func pushResult(L *lua.LState, res highlight.Result) int {
	L.Push(lua.LString(res.Outcome.String()))
	L.Push(lua.LString(res.Word))
	return 2
}
