package cmd

import (
	"fmt"

	"github.com/connorhough/tock/internal/countdown"
	"github.com/spf13/pflag"
)

// patternValue is a pflag.Value that only accepts countdown display patterns.
type patternValue struct {
	pattern countdown.Pattern
}

var _ pflag.Value = (*patternValue)(nil)

func newPatternValue(def countdown.Pattern) *patternValue {
	return &patternValue{pattern: def}
}

func (v *patternValue) String() string {
	return string(v.pattern)
}

func (v *patternValue) Set(s string) error {
	p, ok := countdown.ParsePattern(s)
	if !ok {
		return fmt.Errorf("unsupported format %q (want one of %s)", s, countdown.PatternNames())
	}
	v.pattern = p
	return nil
}

func (v *patternValue) Type() string {
	return "pattern"
}
