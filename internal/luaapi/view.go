package luaapi

import (
	lua "github.com/yuin/gopher-lua"
)

// ViewModule implements edkit.view, cursor and file control of the active
// window.
type ViewModule struct {
	views Views
}

// NewViewModule creates the view module.
func NewViewModule(views Views) *ViewModule {
	return &ViewModule{views: views}
}

// Name returns the module name.
func (m *ViewModule) Name() string {
	return "view"
}

// Register builds the module table.
func (m *ViewModule) Register(L *lua.LState) (*lua.LTable, error) {
	mod := L.NewTable()

	L.SetField(mod, "open", L.NewFunction(m.open))
	L.SetField(mod, "select", L.NewFunction(m.selectRange))
	L.SetField(mod, "goto_line", L.NewFunction(m.gotoLine))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "file", L.NewFunction(m.file))

	return mod, nil
}

// open(path, line?)
func (m *ViewModule) open(L *lua.LState) int {
	path := L.CheckString(1)
	line := L.OptInt(2, 1)
	if err := m.views.Open(path, line); err != nil {
		L.RaiseError("open: %v", err)
	}
	return 0
}

// select(start, end?) selects the 0-based byte range [start, end).
// Without end the cursor is placed at start.
func (m *ViewModule) selectRange(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.OptInt(2, start)
	if start < 0 {
		L.ArgError(1, "start must be non-negative")
		return 0
	}
	if end < 0 {
		L.ArgError(2, "end must be non-negative")
		return 0
	}
	if err := m.views.Select(start, end); err != nil {
		L.RaiseError("select: %v", err)
	}
	return 0
}

// goto_line(line)
func (m *ViewModule) gotoLine(L *lua.LState) int {
	line := L.CheckInt(1)
	if line < 1 {
		L.ArgError(1, "line must be positive")
		return 0
	}
	if err := m.views.GotoLine(line); err != nil {
		L.RaiseError("goto_line: %v", err)
	}
	return 0
}

// line() -> number, 1-based line of the cursor
func (m *ViewModule) line(L *lua.LState) int {
	n, err := m.views.Line()
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// text() -> string
func (m *ViewModule) text(L *lua.LState) int {
	s, err := m.views.Text()
	if err != nil {
		L.RaiseError("text: %v", err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}

// file() -> string
func (m *ViewModule) file(L *lua.LState) int {
	s, err := m.views.FileName()
	if err != nil {
		L.RaiseError("file: %v", err)
		return 0
	}
	L.Push(lua.LString(s))
	return 1
}
