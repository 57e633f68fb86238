package param

import (
	"fmt"
	"slices"
	"strings"
)

// ChoiceOption is one entry of a list parameter. Aliases are extra
// spellings accepted when parsing.
type ChoiceOption struct {
	Value   float64
	Name    string
	Aliases []string
}

func (o ChoiceOption) matches(str string) bool {
	return strings.EqualFold(str, o.Name) ||
		slices.ContainsFunc(o.Aliases, func(a string) bool { return strings.EqualFold(str, a) })
}

// Choice builds a list parameter whose plain value is one of the option
// values, defaulting to the first.
func Choice(id uint32, name string, options []ChoiceOption) *Builder {
	format := func(value float64) string {
		for _, o := range options {
			if o.Value == value {
				return o.Name
			}
		}
		return fmt.Sprintf("#%g", value)
	}
	parse := func(str string) (float64, error) {
		str = strings.TrimSpace(str)
		for _, o := range options {
			if o.matches(str) {
				return o.Value, nil
			}
		}
		return 0, fmt.Errorf("unknown option %q for %s", str, name)
	}

	b := New(id, name).List().Formatter(format, parse)
	if len(options) == 0 {
		return b
	}
	first, last := options[0].Value, options[len(options)-1].Value
	return b.Range(first, last).Steps(int32(len(options) - 1)).Default(first)
}

// SwitchParameter builds an On/Off toggle.
func SwitchParameter(id uint32, name string, on bool) *Builder {
	b := New(id, name).Toggle().Formatter(OnOffFormatter, OnOffParser)
	if on {
		b.Default(1)
	}
	return b
}

// TimeParameter builds a duration in milliseconds.
func TimeParameter(id uint32, name string, minMs, maxMs, defaultMs float64) *Builder {
	return New(id, name).
		Range(minMs, maxMs).
		Default(defaultMs).
		Unit("ms").
		Formatter(TimeFormatter, TimeParser)
}

// StepsParameter builds a whole step count from 0 (Off) to maxSteps.
func StepsParameter(id uint32, name string, maxSteps int32) *Builder {
	return New(id, name).
		Range(0, float64(maxSteps)).
		Steps(maxSteps).
		Formatter(StepsFormatter, StepsParser)
}
