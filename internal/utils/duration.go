package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

var ErrInvalidDuration = errors.New("invalid duration")

// ParseBlockDuration turns free-form duration input into a duration.
// Bare numbers are minutes by convention; anything else must satisfy the
// duration grammar ("2d", "3h30m"). Empty input means no duration was
// requested and is not an error. The numeric check runs before the grammar
// parse and both branches reject results <= 0.
func ParseBlockDuration(raw string) (*time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	expr := raw
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		expr = raw + "m"
	}

	d, err := str2duration.ParseDuration(expr)
	if err != nil {
		return nil, ErrInvalidDuration
	}
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	return &d, nil
}

var defaultDurationChoices = []string{"30m", "1h", "6h", "12h", "1d", "3d", "1w"}

// DurationChoices builds autocomplete suggestions for a partially typed
// duration. A bare number expands into that amount of each supported unit.
func DurationChoices(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultDurationChoices
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return defaultDurationChoices
	}
	choices := make([]string, 0, 4)
	for _, unit := range []string{"m", "h", "d", "w"} {
		choices = append(choices, value+unit)
	}
	return choices
}
