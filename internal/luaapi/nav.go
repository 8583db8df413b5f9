package luaapi

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edkit/internal/host"
)

// NavModule implements edkit.nav, the navigation history of the active
// window.
type NavModule struct {
	editor Editor
}

// NewNavModule creates the nav module.
func NewNavModule(editor Editor) *NavModule {
	return &NavModule{editor: editor}
}

// Name returns the module name.
func (m *NavModule) Name() string {
	return "nav"
}

// Register builds the module table.
func (m *NavModule) Register(L *lua.LState) (*lua.LTable, error) {
	mod := L.NewTable()

	L.SetField(mod, "back", L.NewFunction(m.back))
	L.SetField(mod, "forward", L.NewFunction(m.forward))
	L.SetField(mod, "record", L.NewFunction(m.record))
	L.SetField(mod, "can_back", L.NewFunction(m.canBack))
	L.SetField(mod, "can_forward", L.NewFunction(m.canForward))
	L.SetField(mod, "back_list", L.NewFunction(m.backList))
	L.SetField(mod, "forward_list", L.NewFunction(m.forwardList))

	return mod, nil
}

// back() -> path, line | nil
func (m *NavModule) back(L *lua.LState) int {
	return m.jump(L, "back", m.editor.NavigateBack)
}

// forward() -> path, line | nil
func (m *NavModule) forward(L *lua.LState) int {
	return m.jump(L, "forward", m.editor.NavigateForward)
}

func (m *NavModule) jump(L *lua.LState, name string, fn func() (host.Location, bool, error)) int {
	loc, ok, err := fn()
	if err != nil {
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(loc.Path))
	L.Push(lua.LNumber(loc.Line))
	return 2
}

// record(path, line)
func (m *NavModule) record(L *lua.LState) int {
	path := L.CheckString(1)
	line := L.CheckInt(2)
	if line < 1 {
		L.ArgError(2, "line must be positive")
		return 0
	}
	if err := m.editor.RecordMovement(path, line); err != nil {
		L.RaiseError("record: %v", err)
	}
	return 0
}

// can_back() -> bool
func (m *NavModule) canBack(L *lua.LState) int {
	hist, err := m.editor.History()
	if err != nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(hist.CanGoBack()))
	return 1
}

// can_forward() -> bool
func (m *NavModule) canForward(L *lua.LState) int {
	hist, err := m.editor.History()
	if err != nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(hist.CanGoForward()))
	return 1
}

// back_list() -> {{path=, line=}...}, oldest first
func (m *NavModule) backList(L *lua.LState) int {
	hist, err := m.editor.History()
	if err != nil {
		L.RaiseError("back_list: %v", err)
		return 0
	}
	L.Push(locationList(L, hist.BackList()))
	return 1
}

// forward_list() -> {{path=, line=}...}, next first
func (m *NavModule) forwardList(L *lua.LState) int {
	hist, err := m.editor.History()
	if err != nil {
		L.RaiseError("forward_list: %v", err)
		return 0
	}
	L.Push(locationList(L, hist.ForwardList()))
	return 1
}

func locationList(L *lua.LState, locs []host.Location) *lua.LTable {
	tbl := L.CreateTable(len(locs), 0)
	for i, loc := range locs {
		tbl.RawSetInt(i+1, locationTable(L, loc))
	}
	return tbl
}
