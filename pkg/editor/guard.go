package editor

import (
	"github.com/gobwas/glob"

	"github.com/sculpt-dev/sculpt/pkg/logging"
)

// guard refuses edits on elements whose generated selector path matches a
// protected pattern. Patterns are globs over the selector string, e.g.
// "script*", "#checkout > *".
type guard struct {
	globs []glob.Glob
}

func newGuard(patterns []string, log *logging.Logger) *guard {
	g := &guard{}
	for _, p := range patterns {
		compiled, err := glob.Compile(p)
		if err != nil {
			if log != nil {
				log.Warnf("skipping unparsable protected pattern %q: %v", p, err)
			}
			continue
		}
		g.globs = append(g.globs, compiled)
	}
	return g
}

func (g *guard) blocked(selector string) bool {
	for _, gl := range g.globs {
		if gl.Match(selector) {
			return true
		}
	}
	return false
}
