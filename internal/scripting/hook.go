package scripting

import (
	"errors"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ActionQueryHook is the Lua global called before a top-level action's Query.
const ActionQueryHook = "action_query"

// ActionHook lets park scripts veto top-level actions. Its BeforeQuery
// method satisfies the executor's query hook.
type ActionHook struct {
	mgr   *Manager
	scope string
}

// ActionHook returns the veto hook backed by scope's VM.
func (m *Manager) ActionHook(scope string) *ActionHook {
	return &ActionHook{mgr: m, scope: scope}
}

// BeforeQuery calls action_query(name, params). A string result vetoes the
// action with that reason; nil, false or true allow it.
//
// Postcondition: Returns a non-nil error, and no reason, when the script
// fails or returns a value of another type.
func (h *ActionHook) BeforeQuery(name string, params map[string]int64) (string, error) {
	ret, err := h.mgr.call(h.scope, ActionQueryHook, func(L *lua.LState) []lua.LValue {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := L.NewTable()
		for _, k := range keys {
			t.RawSetString(k, lua.LNumber(params[k]))
		}
		return []lua.LValue{lua.LString(name), t}
	})
	if errors.Is(err, errNoVM) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	switch v := ret.(type) {
	case lua.LString:
		return string(v), nil
	case lua.LBool:
		return "", nil
	default:
		if ret == lua.LNil {
			return "", nil
		}
		return "", fmt.Errorf("scripting: %s returned %s, want string or nil", ActionQueryHook, ret.Type())
	}
}
