package reporter

import (
	"fmt"
	"strconv"
	"time"
)

const defaultRunName = "Automated test run"

// RunName builds the display name of a run from the configured name and the time the run
// started, for instance "Nightly - Oct 19th 2026, 14:05 (+02:00)".
func RunName(configured string, startedAt time.Time) string {
	if configured == "" {
		configured = defaultRunName
	}
	return fmt.Sprintf("%s - %s", configured, FormatExecutionTime(startedAt))
}

// FormatExecutionTime formats t as month, ordinal day, year, time and UTC offset.
func FormatExecutionTime(t time.Time) string {
	return t.Format("Jan ") + ordinal(t.Day()) + t.Format(" 2006, 15:04 (-07:00)")
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
