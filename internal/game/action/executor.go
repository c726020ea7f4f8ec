package action

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/game/money"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
)

// Observer is told about every action the executor finishes, top-level or
// nested.
type Observer interface {
	ActionExecuted(a Action, res *Result, nested bool)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(a Action, res *Result, nested bool)

// ActionExecuted calls f.
func (f ObserverFunc) ActionExecuted(a Action, res *Result, nested bool) { f(a, res, nested) }

// QueryHook may veto a top-level action before its Query runs.
type QueryHook interface {
	// BeforeQuery returns a non-empty reason to reject the action. A hook
	// error is logged and does not reject the action.
	BeforeQuery(name string, params map[string]int64) (reason string, err error)
}

// Journal persists every successful top-level action that is not
// client-only, ghosts included, so that replay sees every world change.
type Journal interface {
	Record(tick uint32, a Action, res *Result) error
}

// Metrics observes top-level action outcomes.
type Metrics interface {
	ObserveAction(action, status string, elapsed time.Duration)
}

type cooldownKey struct {
	player PlayerID
	typ    Type
}

// Executor runs actions against one world. It is owned by the simulation
// loop and is not safe for concurrent use.
type Executor struct {
	world     *park.World
	sink      notify.Sink
	logger    *zap.Logger
	observers []Observer
	hook      QueryHook
	journal   Journal
	metrics   Metrics
	cooldowns map[cooldownKey]uint32
	depth     int
}

// NewExecutor creates an Executor.
//
// Precondition: world and logger must not be nil; a nil sink discards
// intents.
// Postcondition: Returns an Executor with no observers, hook, journal or
// metrics.
func NewExecutor(world *park.World, sink notify.Sink, logger *zap.Logger) *Executor {
	if sink == nil {
		sink = notify.Discard
	}
	return &Executor{
		world:     world,
		sink:      sink,
		logger:    logger,
		cooldowns: make(map[cooldownKey]uint32),
	}
}

// World returns the world the executor mutates.
func (e *Executor) World() *park.World { return e.world }

// AddObserver registers o.
func (e *Executor) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// SetQueryHook installs h, replacing any previous hook.
func (e *Executor) SetQueryHook(h QueryHook) { e.hook = h }

// SetJournal installs j, replacing any previous journal.
func (e *Executor) SetJournal(j Journal) { e.journal = j }

// SetMetrics installs m, replacing any previous metrics.
func (e *Executor) SetMetrics(m Metrics) { e.metrics = m }

// Depth returns the current nesting depth; 0 outside any nested call.
func (e *Executor) Depth() int { return e.depth }

func (e *Executor) env() *Env {
	return &Env{World: e.world, Executor: e, Sink: e.sink, Logger: e.logger}
}

// spends reports whether a result of cost under flags moves money.
func spends(flags Flags, cost money.Money) bool {
	return cost.IsDefined() && flags&(FlagGhost|FlagNoSpend) == 0
}

// Execute runs a as a top-level action: Query, then Execute only if Query
// succeeded, then finances, cooldown, journal, metrics, logging and
// observers.
//
// Postcondition: The world is unchanged when the returned status is not
// StatusOk.
func (e *Executor) Execute(a Action) *Result {
	start := time.Now()
	res := e.run(a)

	if e.metrics != nil {
		e.metrics.ObserveAction(a.Name(), res.Status.String(), time.Since(start))
	}
	fields := []zap.Field{
		zap.String("action", a.Name()),
		zap.Stringer("status", res.Status),
		zap.Uint32("player", uint32(a.PlayerID())),
		zap.Uint32("tick", e.world.Tick),
		zap.Stringer("flags", a.Flags()),
	}
	if res.Ok() {
		e.logger.Info("action executed", append(fields, zap.String("cost", money.Format(res.Cost)))...)
	} else {
		e.logger.Debug("action rejected", append(fields, zap.String("reason", res.Message()))...)
	}
	for _, o := range e.observers {
		o.ActionExecuted(a, res, false)
	}
	return res
}

func (e *Executor) run(a Action) *Result {
	w := e.world
	flags := a.ActionFlags() | a.Flags()

	if w.Paused && !flags.Has(FlagAllowWhilePaused) {
		return Fail(StatusGamePaused, StrCantDoThis, StrNotAllowedWhilePaused)
	}

	key := cooldownKey{player: a.PlayerID(), typ: a.Type()}
	if cd := a.CooldownTime(); cd > 0 {
		if last, ok := e.cooldowns[key]; ok && w.Tick-last < cd {
			return Fail(StatusDisallowed, StrCantDoThis, StrActionOnCooldown)
		}
	}

	if e.hook != nil {
		reason, err := e.hook.BeforeQuery(a.Name(), Parameters(a))
		if err != nil {
			e.logger.Warn("action query hook failed", zap.String("action", a.Name()), zap.Error(err))
		} else if reason != "" {
			e.logger.Info("action vetoed by script", zap.String("action", a.Name()), zap.String("reason", reason))
			return Fail(StatusDisallowed, StrCantDoThis, StrScriptRejected)
		}
	}

	env := e.env()
	query := a.Query(env)
	if !query.Ok() {
		return query
	}
	if spends(flags, query.Cost) && !w.Sandbox && !w.Finances.CanAfford(query.Cost) {
		return Fail(StatusInsufficientFunds, query.ErrorTitle, StrNotEnoughCash)
	}

	res := a.Execute(env)
	if !res.Ok() {
		return res
	}
	if spends(flags, res.Cost) {
		w.Finances.Pay(res.Cost, res.Expenditure)
	}
	if a.CooldownTime() > 0 {
		e.cooldowns[key] = w.Tick
	}
	if e.journal != nil && !flags.Has(FlagClientOnly) {
		if err := e.journal.Record(w.Tick, a, res); err != nil {
			e.logger.Error("journaling action", zap.String("action", a.Name()), zap.Error(err))
		}
	}
	return res
}

// ExecuteNested runs a inside a parent's Execute. It applies the same
// Query-then-Execute contract but no top-level side effects: no pause or
// cooldown checks, no hooks, no finances, and no journal entry. The parent
// must set a's flags before calling.
func (e *Executor) ExecuteNested(a Action) *Result {
	e.depth++
	defer func() { e.depth-- }()

	env := e.env()
	res := a.Query(env)
	if res.Ok() {
		res = a.Execute(env)
	}
	for _, o := range e.observers {
		o.ActionExecuted(a, res, true)
	}
	return res
}
