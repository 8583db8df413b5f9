package luaapi

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/edkit/internal/clipring"
)

// ClipModule implements edkit.clip, the clipboard history.
type ClipModule struct {
	editor Editor
}

// NewClipModule creates the clip module.
func NewClipModule(editor Editor) *ClipModule {
	return &ClipModule{editor: editor}
}

// Name returns the module name.
func (m *ClipModule) Name() string {
	return "clip"
}

// Register builds the module table.
func (m *ClipModule) Register(L *lua.LState) (*lua.LTable, error) {
	mod := L.NewTable()

	commands := map[string]string{
		"copy":               clipring.CommandCopy,
		"cut":                clipring.CommandCut,
		"paste":              clipring.CommandPaste,
		"paste_and_indent":   clipring.CommandPasteAndIndent,
		"next":               clipring.CommandNext,
		"previous":           clipring.CommandPrevious,
		"previous_and_paste": clipring.CommandPreviousAndPaste,
		"choose_and_paste":   clipring.CommandChooseAndPaste,
	}
	for field, command := range commands {
		L.SetField(mod, field, L.NewFunction(m.run(field, command)))
	}

	L.SetField(mod, "current", L.NewFunction(m.current))
	L.SetField(mod, "entries", L.NewFunction(m.entries))
	L.SetField(mod, "len", L.NewFunction(m.length))
	L.SetField(mod, "index", L.NewFunction(m.index))
	L.SetField(mod, "choose", L.NewFunction(m.choose))
	L.SetField(mod, "search", L.NewFunction(m.search))
	L.SetField(mod, "format", L.NewFunction(m.format))

	return mod, nil
}

func (m *ClipModule) run(field, command string) lua.LGFunction {
	return func(L *lua.LState) int {
		if err := m.editor.RunCommand(command); err != nil {
			L.RaiseError("%s: %v", field, err)
		}
		return 0
	}
}

// current() -> string|nil
func (m *ClipModule) current(L *lua.LState) int {
	text, ok := m.editor.ClipboardRing().Current()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}

// entries() -> {string...}, most recent first
func (m *ClipModule) entries(L *lua.LState) int {
	L.Push(stringList(L, m.editor.ClipboardRing().Entries()))
	return 1
}

// len() -> number
func (m *ClipModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.editor.ClipboardRing().Len()))
	return 1
}

// index() -> number, 1-based
func (m *ClipModule) index(L *lua.LState) int {
	L.Push(lua.LNumber(m.editor.ClipboardRing().Index() + 1))
	return 1
}

// choose(i) selects the 1-based entry i and puts it on the clipboard.
func (m *ClipModule) choose(L *lua.LState) int {
	i := L.CheckInt(1)
	if i < 1 {
		L.ArgError(1, "index must be positive")
		return 0
	}
	if err := m.editor.ChooseClipboard(i - 1); err != nil {
		L.RaiseError("choose: %v", err)
	}
	return 0
}

// search(query) -> {index...}, 1-based, best match first
func (m *ClipModule) search(L *lua.LState) int {
	query := L.OptString(1, "")
	matches := m.editor.ClipboardRing().Search(query)

	tbl := L.CreateTable(len(matches), 0)
	for i, idx := range matches {
		tbl.RawSetInt(i+1, lua.LNumber(idx+1))
	}
	L.Push(tbl)
	return 1
}

// format(entry) -> string as shown in the picker
func (m *ClipModule) format(L *lua.LState) int {
	L.Push(lua.LString(clipring.FormatEntry(L.CheckString(1))))
	return 1
}
