package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sveinns/rolebot/bot"
	"github.com/sveinns/rolebot/core"
)

func newNeedyUnit() *core.Unit {
	return core.NewUnit("needy").Require("on-missing").Build()
}

func newLoaderInstance(t *testing.T, reg *Registry) *bot.Instance {
	t.Helper()
	typ, err := bot.NewType("loader-bot", bot.Does(PluginLoader(reg)))
	require.NoError(t, err)
	return bot.NewInstance(typ)
}

func TestPluginLoader_AttachesNamedUnit(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Karma()))
	inst := newLoaderInstance(t, reg)

	cmds := send(t, inst, "youdo karma")
	require.Len(t, cmds, 1)
	assert.Equal(t, "Loaded karma", cmds[0].String())

	// The instance now carries karma behavior.
	assert.Empty(t, send(t, inst, "bob++"))
	cmds = send(t, inst, "karma bob")
	require.Len(t, cmds, 1)
	assert.Equal(t, "bob has karma 1", cmds[0].String())
}

func TestPluginLoader_SiblingInstanceUnaffected(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Karma()))

	typ, err := bot.NewType("loader-bot", bot.Does(PluginLoader(reg)))
	require.NoError(t, err)
	a := bot.NewInstance(typ)
	b := bot.NewInstance(typ)

	send(t, a, "youdo karma")
	send(t, a, "bob++")

	// b never learned karma: neither the bump nor the query do anything.
	assert.Empty(t, send(t, b, "bob++"))
	assert.Empty(t, send(t, b, "karma bob"))
	assert.False(t, b.Extended())
}

func TestPluginLoader_UnknownPlugin(t *testing.T) {
	inst := newLoaderInstance(t, NewRegistry())

	cmds := send(t, inst, "youdo nonsense")
	require.Len(t, cmds, 1)
	assert.Equal(t, "No such plugin: nonsense", cmds[0].String())
	assert.False(t, inst.Extended())
}

func TestPluginLoader_RejectedAttachReportsAndLeavesInstanceIntact(t *testing.T) {
	reg := NewRegistry()
	// A plugin whose requirement nothing satisfies cannot attach.
	needy := newNeedyUnit()
	require.NoError(t, reg.Register(needy))
	inst := newLoaderInstance(t, reg)

	cmds := send(t, inst, "youdo needy")
	require.Len(t, cmds, 1)
	assert.Equal(t, "Cannot load needy", cmds[0].String())
	assert.False(t, inst.Extended())
}
