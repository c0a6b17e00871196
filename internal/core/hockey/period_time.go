package hockey

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsePeriodTime parses the source's "MM:SS" clock into a duration.
// The source never includes an hours field; seconds must be below 60.
func ParsePeriodTime(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("period time %q: expected MM:SS", s)
	}

	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("period time %q: invalid minutes", s)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 || seconds >= 60 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("period time %q: invalid seconds", s)
	}

	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// FormatPeriodTime renders a duration as the HH:MM:SS text the interval column expects.
// A source clock of "05:23" comes out as "00:05:23".
func FormatPeriodTime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
