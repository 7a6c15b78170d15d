package role

import (
	"regexp"

	"github.com/sveinns/rolebot/core"
)

var (
	karmaQueryRE = regexp.MustCompile(`^karma (?P<nick>\S+)`)
	karmaBumpRE  = regexp.MustCompile(`(?P<nick>\S+)\+\+`)
)

// Karma builds the karma unit: per-nick scores kept in unit-scoped state.
// Two grouped on-message handlers: "karma <nick>" reports the current score,
// "<nick>++" increments it silently.
func Karma() *core.Unit {
	return core.NewUnit("karma").
		Field("scores", func() any { return map[string]int{} }).
		Guarded(core.HandlerMessage, core.MatchText(karmaQueryRE), karmaReport).
		Guarded(core.HandlerMessage, core.MatchText(karmaBumpRE), karmaBump).
		Build()
}

func karmaScores(hc *core.HandlerContext) map[string]int {
	scores, ok := hc.State().Get("scores").(map[string]int)
	if !ok {
		scores = map[string]int{}
		hc.State().Set("scores", scores)
	}
	return scores
}

func karmaReport(hc *core.HandlerContext) (*core.Command, error) {
	nick := hc.Captures["nick"]
	return core.Commandf("%s has karma %d", nick, karmaScores(hc)[nick]), nil
}

func karmaBump(hc *core.HandlerContext) (*core.Command, error) {
	karmaScores(hc)[hc.Captures["nick"]]++
	return nil, nil
}
