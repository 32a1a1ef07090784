package fsm

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Definition is the decoded TOML story definition
type Definition struct {
	Initial string        `toml:"initial"`
	States  []StateConfig `toml:"states"`
}

// StateConfig declares one beat; declaration order is transition order
type StateConfig struct {
	Name        string             `toml:"name"`
	OnEnter     []ActionConfig     `toml:"on_enter"`
	OnUpdate    []ActionConfig     `toml:"on_update"`
	OnExit      []ActionConfig     `toml:"on_exit"`
	Transitions []TransitionConfig `toml:"transitions"`
}

// ActionConfig references a registered action by name
type ActionConfig struct {
	Action string         `toml:"action"`
	Args   map[string]any `toml:"args"`
}

// TransitionConfig references a registered guard (or guard factory when
// guard_args are present) and a forward target, or "end"
type TransitionConfig struct {
	Target    string         `toml:"target"`
	Guard     string         `toml:"guard"`
	GuardArgs map[string]any `toml:"guard_args"`
}

// LoadConfig parses a TOML byte slice and populates the machine
// All state, guard and action references are validated; transitions may only
// point forward in declaration order, which makes re-entry unrepresentable
func (m *Machine[T]) LoadConfig(data []byte) error {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return fmt.Errorf("fsm: unmarshal definition: %w", err)
	}
	return m.Load(def)
}

// Load populates the machine from an already-decoded definition
func (m *Machine[T]) Load(def Definition) error {
	if len(def.States) == 0 {
		return fmt.Errorf("fsm: definition has no states")
	}

	// Clear existing graph
	m.nodes = make([]*Node[T], 0, len(def.States))
	m.byName = make(map[string]StateID, len(def.States))
	m.active = StateNone
	m.done = false

	// First pass: assign IDs in declaration order
	for i, sc := range def.States {
		if sc.Name == "" {
			return fmt.Errorf("fsm: state %d has no name", i)
		}
		if _, dup := m.byName[sc.Name]; dup {
			return fmt.Errorf("fsm: duplicate state '%s'", sc.Name)
		}
		m.byName[sc.Name] = StateID(i)
	}

	initialID, ok := m.byName[def.Initial]
	if !ok {
		return fmt.Errorf("fsm: initial state '%s' not defined", def.Initial)
	}
	m.initial = initialID

	// Second pass: build nodes, resolve references
	for i, sc := range def.States {
		node := &Node[T]{
			ID:   StateID(i),
			Name: sc.Name,
		}

		var err error
		if node.OnEnter, err = m.bindActions(sc.Name, sc.OnEnter); err != nil {
			return err
		}
		if node.OnUpdate, err = m.bindActions(sc.Name, sc.OnUpdate); err != nil {
			return err
		}
		if node.OnExit, err = m.bindActions(sc.Name, sc.OnExit); err != nil {
			return err
		}

		for _, tc := range sc.Transitions {
			trans := Transition[T]{Target: StateNone}

			if tc.Target != TargetEnd {
				targetID, ok := m.byName[tc.Target]
				if !ok {
					return fmt.Errorf("fsm: state '%s' references unknown target '%s'", sc.Name, tc.Target)
				}
				if targetID <= node.ID {
					return fmt.Errorf("fsm: state '%s' transition to '%s' goes backward", sc.Name, tc.Target)
				}
				trans.Target = targetID
			}

			if tc.Guard != "" {
				guard, err := m.resolveGuard(tc.Guard, tc.GuardArgs)
				if err != nil {
					return fmt.Errorf("fsm: state '%s': %w", sc.Name, err)
				}
				trans.Guard = guard
			}

			node.Transitions = append(node.Transitions, trans)
		}

		m.nodes = append(m.nodes, node)
	}

	return nil
}

func (m *Machine[T]) bindActions(state string, configs []ActionConfig) ([]Action[T], error) {
	if len(configs) == 0 {
		return nil, nil
	}
	actions := make([]Action[T], 0, len(configs))
	for _, ac := range configs {
		fn, ok := m.actionReg[ac.Action]
		if !ok {
			return nil, fmt.Errorf("fsm: state '%s' references unknown action '%s'", state, ac.Action)
		}
		actions = append(actions, Action[T]{Name: ac.Action, Func: fn, Args: ac.Args})
	}
	return actions, nil
}

func (m *Machine[T]) resolveGuard(name string, args map[string]any) (GuardFunc[T], error) {
	if len(args) > 0 {
		factory, ok := m.guardFactoryReg[name]
		if !ok {
			return nil, fmt.Errorf("unknown guard factory '%s'", name)
		}
		guard, err := factory(args)
		if err != nil {
			return nil, fmt.Errorf("guard factory '%s': %w", name, err)
		}
		return guard, nil
	}

	guard, ok := m.guardReg[name]
	if !ok {
		return nil, fmt.Errorf("unknown guard '%s'", name)
	}
	return guard, nil
}
