package role

import (
	"regexp"

	"github.com/sveinns/rolebot/core"
)

var trustRE = regexp.MustCompile(`^trust (?P<nick>\S+)$`)

// Oping builds the auto-op unit: trusted nicks are given operator status
// when they join. The trust list is unit-scoped in-memory state, seeded from
// the arguments and growable at runtime via the grouped "trust <nick>"
// message handler. The join handler is exclusive: exactly one unit may
// decide what happens on join.
func Oping(trusted ...string) *core.Unit {
	seed := append([]string(nil), trusted...)
	return core.NewUnit("oping").
		Field("trusted", func() any {
			set := map[string]bool{}
			for _, n := range seed {
				set[n] = true
			}
			return set
		}).
		Exclusive(core.HandlerJoin, opOnJoin).
		Guarded(core.HandlerMessage, core.MatchText(trustRE), addTrust).
		Build()
}

func trustSet(hc *core.HandlerContext) map[string]bool {
	set, ok := hc.State().Get("trusted").(map[string]bool)
	if !ok {
		set = map[string]bool{}
		hc.State().Set("trusted", set)
	}
	return set
}

func opOnJoin(hc *core.HandlerContext) (*core.Command, error) {
	join, ok := hc.Event.(core.JoinEvent)
	if !ok {
		return nil, nil
	}
	if !trustSet(hc)[join.Nick] {
		return nil, nil
	}
	return core.Commandf("MODE +o %s", join.Nick), nil
}

func addTrust(hc *core.HandlerContext) (*core.Command, error) {
	nick := hc.Captures["nick"]
	trustSet(hc)[nick] = true
	return core.Commandf("%s is now trusted", nick), nil
}
