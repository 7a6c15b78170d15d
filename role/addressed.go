package role

import (
	"regexp"
	"strings"

	"github.com/sveinns/rolebot/core"
	"github.com/sveinns/rolebot/dispatch"
)

// HandlerAddressed is the handler name the addressed-policy unit
// redispatches to. Units that should only react when the bot is spoken to
// register grouped handlers under this name instead of on-message.
const HandlerAddressed = "on-addressed"

var greetRE = regexp.MustCompile(`^(?:hi|hello|hey)\b`)

// Addressed builds the address-policy unit: a grouped on-message handler
// matching messages directed at nick ("nick: text"), which strips the prefix
// and redispatches the remainder under on-addressed with the first
// quantifier. The policy is an ordinary unit wrapping dispatch, not an
// engine feature; it requires that something in the composition actually
// provides on-addressed, so composing it alone fails early instead of
// silently ignoring every mention.
func Addressed(nick string) *core.Unit {
	prefix := nick + ":"
	guard := func(ev core.Event) (core.Captures, bool) {
		msg, ok := ev.(core.MessageEvent)
		if !ok {
			return nil, false
		}
		rest, ok := strings.CutPrefix(msg.Text, prefix)
		if !ok {
			return nil, false
		}
		return core.Captures{"rest": strings.TrimSpace(rest)}, true
	}
	engine := dispatch.New()
	return core.NewUnit("addressed").
		Require(HandlerAddressed).
		Guarded(core.HandlerMessage, guard, func(hc *core.HandlerContext) (*core.Command, error) {
			msg, _ := hc.Message()
			inner := core.MessageEvent{Sender: msg.Sender, Text: hc.Captures["rest"]}
			cmds, err := engine.Invoke(hc.Context, hc.Self(), HandlerAddressed, inner, dispatch.First)
			if err != nil {
				return nil, err
			}
			if len(cmds) == 0 {
				return nil, nil
			}
			return &cmds[0], nil
		}).
		Build()
}

// Greeter builds a minimal on-addressed unit: greets back when greeted.
// Pairs with Addressed, which supplies the routing and requires this name.
func Greeter() *core.Unit {
	return core.NewUnit("greeter").
		Guarded(HandlerAddressed, core.MatchText(greetRE), func(hc *core.HandlerContext) (*core.Command, error) {
			msg, _ := hc.Message()
			return core.Commandf("hello, %s", msg.Sender), nil
		}).
		Build()
}
