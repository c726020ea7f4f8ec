package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine.log and engine.park are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "park", m.parkModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	level := func(log func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	L.SetField(mod, "debug", L.NewFunction(level(m.logger.Debug)))
	L.SetField(mod, "info", L.NewFunction(level(m.logger.Info)))
	L.SetField(mod, "warn", L.NewFunction(level(m.logger.Warn)))
	return mod
}

func (m *Manager) parkModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "info", L.NewFunction(func(L *lua.LState) int {
		if m.QueryPark == nil {
			L.Push(lua.LNil)
			return 1
		}
		p := m.QueryPark()
		t := L.NewTable()
		t.RawSetString("tick", lua.LNumber(p.Tick))
		t.RawSetString("cash", lua.LNumber(p.Cash))
		t.RawSetString("park_value", lua.LNumber(p.ParkValue))
		t.RawSetString("paused", lua.LBool(p.Paused))
		t.RawSetString("rides", lua.LNumber(p.Rides))
		t.RawSetString("guests", lua.LNumber(p.Guests))
		L.Push(t)
		return 1
	}))
	L.SetField(mod, "ride", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckInt(1)
		if m.QueryRide == nil {
			L.Push(lua.LNil)
			return 1
		}
		r := m.QueryRide(id)
		if r == nil {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		t.RawSetString("id", lua.LNumber(r.ID))
		t.RawSetString("name", lua.LString(r.Name))
		t.RawSetString("type", lua.LString(r.Type))
		t.RawSetString("status", lua.LString(r.Status))
		t.RawSetString("riders", lua.LNumber(r.NumRiders))
		L.Push(t)
		return 1
	}))
	return mod
}
