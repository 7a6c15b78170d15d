package role

import (
	"regexp"

	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/logging"
)

var loadRE = regexp.MustCompile(`^youdo (?P<plugin>\S+)$`)

// PluginLoader builds the self-modification unit: on "youdo <plugin>" it
// looks the plugin up in reg and attaches it to the instance the handler is
// running on. Only that instance gains the behavior; siblings of the same
// type are untouched. A failed attach (conflict, unsatisfied requirement)
// leaves the instance unchanged and is reported back into the channel.
func PluginLoader(reg *Registry) *core.Unit {
	return core.NewUnit("loader").
		Guarded(core.HandlerMessage, core.MatchText(loadRE), func(hc *core.HandlerContext) (*core.Command, error) {
			name := hc.Captures["plugin"]
			unit, ok := reg.Lookup(name)
			if !ok {
				return core.Commandf("No such plugin: %s", name), nil
			}
			err := hc.Self().Attach(unit)
			logging.LogAttach(hc.Logger(), []string{name}, err)
			if err != nil {
				return core.Commandf("Cannot load %s", name), nil
			}
			return core.Commandf("Loaded %s", name), nil
		}).
		Build()
}
