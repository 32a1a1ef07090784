package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates an empty machine; register guards and actions, then Load
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		byName:          make(map[string]StateID),
		initial:         StateNone,
		active:          StateNone,
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard factory to the registry
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state and runs its OnEnter actions
func (m *Machine[T]) Init(ctx T) error {
	if len(m.nodes) == 0 {
		return fmt.Errorf("fsm: no states loaded")
	}
	if m.initial == StateNone {
		return fmt.Errorf("fsm: no initial state configured")
	}

	m.active = m.initial
	m.timeInState = 0
	m.done = false

	for _, action := range m.nodes[m.active].OnEnter {
		action.Func(ctx, action.Args)
	}
	return nil
}

// Update advances the beat clock by dt, runs OnUpdate actions, then fires
// at most one guarded transition. Transitions reset the beat clock to zero
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.done || m.active == StateNone {
		return
	}

	m.timeInState += dt

	node := m.nodes[m.active]
	for _, action := range node.OnUpdate {
		action.Func(ctx, action.Args)
	}

	for _, trans := range node.Transitions {
		if trans.Guard == nil || trans.Guard(ctx, m) {
			m.transition(ctx, trans.Target)
			return
		}
	}
}

// transition runs exit actions, moves to target, runs enter actions
// A StateNone target finishes the machine
func (m *Machine[T]) transition(ctx T, target StateID) {
	node := m.nodes[m.active]
	for _, action := range node.OnExit {
		action.Func(ctx, action.Args)
	}

	if target == StateNone {
		m.active = StateNone
		m.done = true
		return
	}

	m.active = target
	m.timeInState = 0
	for _, action := range m.nodes[target].OnEnter {
		action.Func(ctx, action.Args)
	}
}

// Done reports whether the terminal transition has fired
func (m *Machine[T]) Done() bool {
	return m.done
}

// Active returns the current state ID, StateNone if not running
func (m *Machine[T]) Active() StateID {
	return m.active
}

// ActiveName returns the current state name, "" if not running
func (m *Machine[T]) ActiveName() string {
	if m.active == StateNone {
		return ""
	}
	return m.nodes[m.active].Name
}

// TimeInState returns the elapsed simulation time in the current state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Elapsed returns TimeInState in seconds, the unit progress math works in
func (m *Machine[T]) Elapsed() float64 {
	return m.timeInState.Seconds()
}

// StateID resolves a state name, StateNone if unknown
func (m *Machine[T]) StateID(name string) StateID {
	if id, ok := m.byName[name]; ok {
		return id
	}
	return StateNone
}

// StateCount returns the number of loaded states
func (m *Machine[T]) StateCount() int {
	return len(m.nodes)
}
