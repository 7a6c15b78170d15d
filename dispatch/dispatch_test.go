package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sveinns/rolebot/bot"
	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/internal/testutil"
)

func newInstance(t *testing.T, units ...*core.Unit) *bot.Instance {
	t.Helper()
	typ, err := bot.NewType("t", bot.Does(units...))
	require.NoError(t, err)
	return bot.NewInstance(typ)
}

func TestInvoke_AllInvokesEveryMatchInOrder(t *testing.T) {
	rec := &testutil.Recorder{}
	inst := newInstance(t,
		testutil.GroupedUnit("first", testutil.Always(), rec.Handler("first", "one")),
		testutil.GroupedUnit("second", testutil.Always(), rec.Handler("second", "two")),
	)

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, All)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, rec.Calls)
	require.Len(t, cmds, 2)
	assert.Equal(t, "one", cmds[0].String())
	assert.Equal(t, "two", cmds[1].String())
}

func TestInvoke_AllSkipsNonMatches(t *testing.T) {
	rec := &testutil.Recorder{}
	inst := newInstance(t,
		testutil.GroupedUnit("miss", testutil.Never(), rec.Handler("miss", "no")),
		testutil.GroupedUnit("hit", testutil.Always(), rec.Handler("hit", "yes")),
	)

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, All)
	require.NoError(t, err)
	assert.Equal(t, []string{"hit"}, rec.Calls)
	require.Len(t, cmds, 1)
	assert.Equal(t, "yes", cmds[0].String())
}

func TestInvoke_FirstStopsAtFirstMatch(t *testing.T) {
	rec := &testutil.Recorder{}
	inst := newInstance(t,
		testutil.GroupedUnit("first", testutil.Always(), rec.Handler("first", "one")),
		testutil.GroupedUnit("second", testutil.Always(), rec.Handler("second", "two")),
	)

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, First)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, rec.Calls)
	require.Len(t, cmds, 1)
	assert.Equal(t, "one", cmds[0].String())
}

func TestInvoke_FirstZeroMatchesIsEmpty(t *testing.T) {
	inst := newInstance(t, testutil.GroupedUnit("miss", testutil.Never(), testutil.Silent()))

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, First)
	assert.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestInvoke_AnyRequiredFailsOnZeroMatches(t *testing.T) {
	inst := newInstance(t, testutil.GroupedUnit("miss", testutil.Never(), testutil.Silent()))

	_, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, AnyRequired)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Contains(t, err.Error(), core.HandlerMessage)
}

func TestInvoke_MissingEntry(t *testing.T) {
	inst := newInstance(t)

	// A name absent from the table behaves exactly like zero matches.
	cmds, err := New().Invoke(context.Background(), inst, "on-nothing", core.MessageEvent{}, All)
	assert.NoError(t, err)
	assert.Empty(t, cmds)

	cmds, err = New().Invoke(context.Background(), inst, "on-nothing", core.MessageEvent{}, First)
	assert.NoError(t, err)
	assert.Empty(t, cmds)

	_, err = New().Invoke(context.Background(), inst, "on-nothing", core.MessageEvent{}, AnyRequired)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestInvoke_HandlerErrorAbortsRemaining(t *testing.T) {
	rec := &testutil.Recorder{}
	boom := errors.New("boom")
	failing := testutil.GroupedUnit("failing", testutil.Always(),
		func(*core.HandlerContext) (*core.Command, error) { return core.Commandf("early"), boom })
	inst := newInstance(t,
		testutil.GroupedUnit("ok", testutil.Always(), rec.Handler("ok", "fine")),
		failing,
		testutil.GroupedUnit("after", testutil.Always(), rec.Handler("after", "late")),
	)

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, All)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")
	// Commands from earlier matches are kept; later candidates never run.
	require.Len(t, cmds, 1)
	assert.Equal(t, "fine", cmds[0].String())
	assert.Equal(t, []string{"ok"}, rec.Calls)
}

func TestInvoke_GuardCapturesReachHandler(t *testing.T) {
	var got core.Captures
	guard := func(ev core.Event) (core.Captures, bool) {
		return core.Captures{"nick": "bob"}, true
	}
	unit := testutil.GroupedUnit("capturing", guard,
		func(hc *core.HandlerContext) (*core.Command, error) {
			got = hc.Captures
			return nil, nil
		})
	inst := newInstance(t, unit)

	_, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, All)
	require.NoError(t, err)
	assert.Equal(t, "bob", got["nick"])
}

func TestInvoke_StateIsUnitScoped(t *testing.T) {
	mk := func(name string) *core.Unit {
		return core.NewUnit(name).
			Field("n", func() any { return 0 }).
			Guarded(core.HandlerMessage, testutil.Always(), func(hc *core.HandlerContext) (*core.Command, error) {
				n := hc.State().Get("n").(int)
				hc.State().Set("n", n+1)
				return core.Commandf("%s=%d", name, n+1), nil
			}).
			Build()
	}
	inst := newInstance(t, mk("a"), mk("b"))

	cmds, err := New().Invoke(context.Background(), inst, core.HandlerMessage, core.MessageEvent{Text: "x"}, All)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	// Each unit sees only its own counter.
	assert.Equal(t, "a=1", cmds[0].String())
	assert.Equal(t, "b=1", cmds[1].String())
}

func TestQuantifier_String(t *testing.T) {
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "any-required", AnyRequired.String())
	assert.Equal(t, "first", First.String())
}
