package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// timeUnits maps accepted suffixes to milliseconds, longest suffix first
// so "ms" is not mistaken for "s".
var timeUnits = []struct {
	suffix string
	scale  float64
}{
	{"ms", 1},
	{"µs", 0.001},
	{"us", 0.001},
	{"s", 1000},
}

// TimeFormatter renders a duration given in milliseconds, picking µs, ms
// or s by magnitude.
func TimeFormatter(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.0f µs", ms*1000)
	case ms < 1000:
		return fmt.Sprintf("%.1f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// TimeParser reads "500us", "1.5 ms" or "2s" into milliseconds. A bare
// number is taken as milliseconds.
func TimeParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	scale := 1.0
	for _, u := range timeUnits {
		if rest, ok := strings.CutSuffix(str, u.suffix); ok {
			str, scale = strings.TrimSpace(rest), u.scale
			break
		}
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", str, err)
	}
	return v * scale, nil
}

// OnOffFormatter renders a toggle.
func OnOffFormatter(value float64) string {
	if value >= 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser accepts on/off, yes/no, true/false and 1/0.
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	}
	return 0, fmt.Errorf("expected on or off, got %q", str)
}

// StepsFormatter renders a step count. Zero reads "Off".
func StepsFormatter(value float64) string {
	switch n := int(math.Round(value)); n {
	case 0:
		return "Off"
	case 1:
		return "1 step"
	default:
		return strconv.Itoa(n) + " steps"
	}
}

// StepsParser reads "8", "8 steps" or "off".
func StepsParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "off" || str == "none" {
		return 0, nil
	}
	str = strings.TrimSuffix(str, "steps")
	str = strings.TrimSpace(strings.TrimSuffix(str, "step"))
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid step count: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("step count %d is negative", n)
	}
	return float64(n), nil
}
