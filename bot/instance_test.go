package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sveinns/rolebot/compose"
	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/dispatch"
	"github.com/sveinns/rolebot/internal/testutil"
)

func dispatchAll(t *testing.T, inst *Instance, ev core.Event) []core.Command {
	t.Helper()
	cmds, err := dispatch.New().Invoke(context.Background(), inst, ev.Handler(), ev, dispatch.All)
	require.NoError(t, err)
	return cmds
}

func TestNewInstance(t *testing.T) {
	typ, err := NewType("bot", Does(testutil.GroupedUnit("u", testutil.Always(), testutil.Silent())))
	require.NoError(t, err)

	a := NewInstance(typ)
	b := NewInstance(typ)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, typ, a.Type())
	assert.Same(t, typ.Behavior(), a.Effective())
	assert.False(t, a.Extended())
}

func TestAttach_InstanceIsolation(t *testing.T) {
	typ, err := NewType("bot")
	require.NoError(t, err)
	a := NewInstance(typ)
	b := NewInstance(typ)

	unit := testutil.GroupedUnit("echo", testutil.Always(), testutil.Reply("echoed"))
	require.NoError(t, a.Attach(unit))

	ev := core.MessageEvent{Sender: "x", Text: "hi"}
	assert.Len(t, dispatchAll(t, a, ev), 1)
	// Sibling instance of the same type is untouched, and so is the type.
	assert.Empty(t, dispatchAll(t, b, ev))
	_, ok := typ.Behavior().Entry(core.HandlerMessage)
	assert.False(t, ok)
	assert.True(t, a.Extended())
	assert.False(t, b.Extended())
}

func TestAttach_ExclusiveLastAttachedWins(t *testing.T) {
	rec := &testutil.Recorder{}
	typ, err := NewType("bot", Handle(core.HandlerJoin, rec.Handler("type-body", "from type")))
	require.NoError(t, err)
	inst := NewInstance(typ)

	override := testutil.ExclusiveUnit("override", core.HandlerJoin, rec.Handler("mixin", "from mixin"))
	require.NoError(t, inst.Attach(override))

	cmds := dispatchAll(t, inst, core.JoinEvent{Nick: "z"})
	require.Len(t, cmds, 1)
	assert.Equal(t, "from mixin", cmds[0].String())
	assert.Equal(t, []string{"mixin"}, rec.Calls)
}

func TestAttach_GroupedAppendsKeepingOldReachable(t *testing.T) {
	rec := &testutil.Recorder{}
	typ, err := NewType("bot", Does(testutil.GroupedUnit("old", testutil.Always(), rec.Handler("old", "old"))))
	require.NoError(t, err)
	inst := NewInstance(typ)

	require.NoError(t, inst.Attach(testutil.GroupedUnit("new", testutil.Always(), rec.Handler("new", "new"))))

	cmds := dispatchAll(t, inst, core.MessageEvent{Text: "x"})
	require.Len(t, cmds, 2)
	assert.Equal(t, "old", cmds[0].String())
	assert.Equal(t, "new", cmds[1].String())
	assert.Equal(t, []string{"old", "new"}, rec.Calls)
}

func TestAttach_ReattachDuplicatesCandidates(t *testing.T) {
	rec := &testutil.Recorder{}
	unit := testutil.GroupedUnit("dup", testutil.Always(), rec.Handler("dup", "hi"))
	typ, err := NewType("bot")
	require.NoError(t, err)
	inst := NewInstance(typ)

	require.NoError(t, inst.Attach(unit))
	require.NoError(t, inst.Attach(unit))

	cmds := dispatchAll(t, inst, core.MessageEvent{Text: "x"})
	assert.Len(t, cmds, 2)
	assert.Equal(t, []string{"dup", "dup"}, rec.Calls)
}

func TestAttach_FailureIsAtomic(t *testing.T) {
	typ, err := NewType("bot", Does(testutil.ExclusiveUnit("base", core.HandlerJoin, testutil.Reply("base"))))
	require.NoError(t, err)
	inst := NewInstance(typ)
	before := inst.Effective()

	// Two exclusive claims on the same name inside one attach conflict.
	a := testutil.ExclusiveUnit("a", core.HandlerMessage, testutil.Silent())
	b := testutil.ExclusiveUnit("b", core.HandlerMessage, testutil.Silent())
	err = inst.Attach(a, b)
	var cerr *compose.Error
	require.ErrorAs(t, err, &cerr)

	assert.Same(t, before, inst.Effective())
	assert.Empty(t, dispatchAll(t, inst, core.MessageEvent{Text: "x"}))
}

func TestAttach_UnsatisfiedRequirementIsAtomic(t *testing.T) {
	typ, err := NewType("bot")
	require.NoError(t, err)
	inst := NewInstance(typ)

	needy := core.NewUnit("needy").Require("on-missing").Build()
	err = inst.Attach(needy)
	var cerr *compose.Error
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Unsatisfied, 1)
	assert.False(t, inst.Extended())
}

func TestAttach_RequirementSatisfiedByExistingBehavior(t *testing.T) {
	typ, err := NewType("bot", Handle(core.HandlerJoin, testutil.Silent()))
	require.NoError(t, err)
	inst := NewInstance(typ)

	needy := core.NewUnit("needy").Require(core.HandlerJoin).Build()
	assert.NoError(t, inst.Attach(needy))
}

func TestAttach_Preconditions(t *testing.T) {
	typ, err := NewType("bot")
	require.NoError(t, err)

	inst := NewInstance(typ)
	assert.ErrorIs(t, inst.Attach(), ErrNoUnits)

	inst.Close()
	assert.True(t, inst.Closed())
	unit := testutil.GroupedUnit("late", testutil.Always(), testutil.Silent())
	assert.ErrorIs(t, inst.Attach(unit), ErrInstanceClosed)
}

func TestAttach_PreservesExistingFieldValues(t *testing.T) {
	counter := core.NewUnit("counter").
		Field("n", func() any { return 0 }).
		Guarded(core.HandlerMessage, testutil.Always(), func(hc *core.HandlerContext) (*core.Command, error) {
			n := hc.State().Get("n").(int) + 1
			hc.State().Set("n", n)
			return core.Commandf("n=%d", n), nil
		}).
		Build()
	typ, err := NewType("bot", Does(counter))
	require.NoError(t, err)
	inst := NewInstance(typ)

	cmds := dispatchAll(t, inst, core.MessageEvent{Text: "x"})
	require.Equal(t, "n=1", cmds[0].String())

	require.NoError(t, inst.Attach(testutil.GroupedUnit("other", testutil.Never(), testutil.Silent())))

	// Attaching more behavior must not reset state a unit accumulated.
	cmds = dispatchAll(t, inst, core.MessageEvent{Text: "x"})
	require.Equal(t, "n=2", cmds[0].String())
}
