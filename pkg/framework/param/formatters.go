package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// PercentFormatter formats percentage values.
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings.
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// TimeFormatter formats millisecond values with appropriate units.
func TimeFormatter(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.1f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// TimeParser parses time strings to milliseconds.
func TimeParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	if strings.HasSuffix(str, "s") && !strings.HasSuffix(str, "ms") {
		val, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(str, "s")), 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	str = strings.TrimSuffix(str, "ms")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}

// OnOffFormatter formats boolean as On/Off.
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses On/Off strings.
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}

// ListFormatter returns a formatter that shows the item name of a stepped
// list parameter.
func ListFormatter(items ...string) func(float64) string {
	return func(plain float64) string {
		i := int(plain + 0.5)
		if i < 0 || i >= len(items) {
			return strconv.Itoa(i)
		}
		return items[i]
	}
}

// ListParser is the inverse of ListFormatter. Plain numbers are accepted too.
func ListParser(items ...string) func(string) (float64, error) {
	return func(str string) (float64, error) {
		str = strings.TrimSpace(str)
		for i, item := range items {
			if strings.EqualFold(item, str) {
				return float64(i), nil
			}
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0, fmt.Errorf("unknown item %q", str)
		}
		return v, nil
	}
}
