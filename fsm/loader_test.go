package fsm

import (
	"strings"
	"testing"
	"time"
)

func newLoaderTestMachine() *Machine[*testCtx] {
	m := NewMachine[*testCtx]()
	m.RegisterAction("Log", func(ctx *testCtx, args map[string]any) {})
	m.RegisterGuard("Always", func(ctx *testCtx, m *Machine[*testCtx]) bool { return true })
	m.RegisterGuardFactory("After", func(args map[string]any) (GuardFunc[*testCtx], error) {
		secs, _ := args["seconds"].(float64)
		d := time.Duration(secs * float64(time.Second))
		return func(ctx *testCtx, m *Machine[*testCtx]) bool {
			return m.TimeInState() >= d
		}, nil
	})
	return m
}

func TestLoadConfigTOML(t *testing.T) {
	input := []byte(`
initial = "approach"

[[states]]
name = "approach"
on_enter = [{ action = "Log", args = { tag = "approach" } }]
transitions = [{ target = "bite", guard = "After", guard_args = { seconds = 2.0 } }]

[[states]]
name = "bite"
transitions = [{ target = "end", guard = "Always" }]
`)

	m := newLoaderTestMachine()
	if err := m.LoadConfig(input); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if m.StateCount() != 2 {
		t.Errorf("StateCount = %d, want 2", m.StateCount())
	}
	if m.StateID("approach") != 0 || m.StateID("bite") != 1 {
		t.Error("state IDs not in declaration order")
	}
}

func TestLoadRejectsUnknownReferences(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
		want string
	}{
		{
			name: "unknown initial",
			def: Definition{
				Initial: "nope",
				States:  []StateConfig{{Name: "a"}},
			},
			want: "initial state",
		},
		{
			name: "unknown target",
			def: Definition{
				Initial: "a",
				States: []StateConfig{
					{Name: "a", Transitions: []TransitionConfig{{Target: "ghost", Guard: "Always"}}},
				},
			},
			want: "unknown target",
		},
		{
			name: "unknown guard",
			def: Definition{
				Initial: "a",
				States: []StateConfig{
					{Name: "a", Transitions: []TransitionConfig{{Target: "end", Guard: "Nope"}}},
				},
			},
			want: "unknown guard",
		},
		{
			name: "unknown action",
			def: Definition{
				Initial: "a",
				States: []StateConfig{
					{Name: "a", OnEnter: []ActionConfig{{Action: "Nope"}}},
				},
			},
			want: "unknown action",
		},
		{
			name: "duplicate state",
			def: Definition{
				Initial: "a",
				States:  []StateConfig{{Name: "a"}, {Name: "a"}},
			},
			want: "duplicate",
		},
		{
			name: "no states",
			def:  Definition{Initial: "a"},
			want: "no states",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newLoaderTestMachine()
			err := m.Load(tc.def)
			if err == nil {
				t.Fatal("Load should have failed")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

// TestLoadRejectsBackwardTransition verifies the forward-only invariant is
// enforced at load time: no state may recur
func TestLoadRejectsBackwardTransition(t *testing.T) {
	def := Definition{
		Initial: "a",
		States: []StateConfig{
			{Name: "a", Transitions: []TransitionConfig{{Target: "b", Guard: "Always"}}},
			{Name: "b", Transitions: []TransitionConfig{{Target: "a", Guard: "Always"}}},
		},
	}

	m := newLoaderTestMachine()
	err := m.Load(def)
	if err == nil {
		t.Fatal("backward transition should be rejected")
	}
	if !strings.Contains(err.Error(), "backward") {
		t.Errorf("error %q does not mention backward", err)
	}

	// Self-loop counts as backward
	def.States[1].Transitions[0].Target = "b"
	m = newLoaderTestMachine()
	if err := m.Load(def); err == nil {
		t.Fatal("self transition should be rejected")
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	m := newLoaderTestMachine()
	if err := m.LoadConfig([]byte(`initial = [broken`)); err == nil {
		t.Error("malformed TOML should fail")
	}
}
