package fsm

import (
	"time"
)

// StateID is a dense index into the machine's state list
type StateID int

// StateNone marks "no state": before Init and after the terminal transition
const StateNone StateID = -1

// TargetEnd is the transition target name that finishes the machine
const TargetEnd = "end"

// GuardFunc returns true if the transition should fire this tick
// The machine is passed so guards can read TimeInState
type GuardFunc[T any] func(ctx T, m *Machine[T]) bool

// GuardFactoryFunc builds a parameterized guard from definition args
type GuardFactoryFunc[T any] func(args map[string]any) (GuardFunc[T], error)

// ActionFunc executes a side effect on enter/update/exit
type ActionFunc[T any] func(ctx T, args map[string]any)

// Action is a bound side effect with its pre-parsed args
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
	Args map[string]any
}

// Transition links a state to its successor, guarded
// Target == StateNone finishes the machine
type Transition[T any] struct {
	Target StateID
	Guard  GuardFunc[T]
}

// Node is one story beat
type Node[T any] struct {
	ID   StateID
	Name string

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Evaluated in declaration order, first passing guard wins
	Transitions []Transition[T]
}

// Machine is a single-region, forward-only state machine
// States advance strictly in declaration order and never recur
type Machine[T any] struct {
	nodes  []*Node[T]
	byName map[string]StateID

	initial     StateID
	active      StateID
	timeInState time.Duration
	done        bool

	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]
}
