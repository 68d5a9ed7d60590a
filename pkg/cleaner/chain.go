package cleaner

import (
	"fmt"
	"strings"
)

// Chain runs converters in order, each on the previous one's output. It lets a
// caller post-process a format, e.g. markdown followed by a custom rewriter.
type Chain []Cleaner

// NewChain builds a chain, dropping nil entries.
func NewChain(cleaners ...Cleaner) Chain {
	chain := make(Chain, 0, len(cleaners))
	for _, c := range cleaners {
		if c != nil {
			chain = append(chain, c)
		}
	}
	return chain
}

// Clean stops at the first failure and names the converter that failed.
func (c Chain) Clean(markup string) (string, error) {
	out := markup
	for _, step := range c {
		var err error
		if out, err = step.Clean(out); err != nil {
			return "", fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return out, nil
}

// Name is the step names joined with "+".
func (c Chain) Name() string {
	if len(c) == 0 {
		return "empty"
	}
	names := make([]string, len(c))
	for i, step := range c {
		names[i] = step.Name()
	}
	return strings.Join(names, "+")
}
