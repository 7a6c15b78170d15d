package compose

import (
	"fmt"
	"strings"

	"github.com/sveinns/rolebot/core"
)

// Conflict records irreconcilable handler declarations under one name:
// either two or more exclusive declarations from different sources, or a
// mixture of exclusive and grouped declarations (a name cannot be both).
type Conflict struct {
	Handler string
	// Sources names every contributing unit, with "(type)" standing in for
	// declarations on the composing type itself.
	Sources []string
}

// Error formats the conflict with all contributing sources.
func (c Conflict) Error() string {
	return fmt.Sprintf("handler %q: conflicting declarations from %s", c.Handler, strings.Join(c.Sources, ", "))
}

// Error is the all-or-nothing composition failure: every conflict and every
// unsatisfied requirement found in one pass. The same shape is returned by
// static composition and by runtime mixin attachment.
type Error struct {
	Conflicts   []Conflict
	Unsatisfied []core.Requirement
}

// Error lists each conflict and missing capability on its own line.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("composition failed:")
	for _, c := range e.Conflicts {
		b.WriteString("\n  conflict: ")
		b.WriteString(c.Error())
	}
	for _, r := range e.Unsatisfied {
		fmt.Fprintf(&b, "\n  unsatisfied: handler %q required by unit %q", r.Name, r.Unit)
	}
	return b.String()
}

func (e *Error) empty() bool {
	return len(e.Conflicts) == 0 && len(e.Unsatisfied) == 0
}
