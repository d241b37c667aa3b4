package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunNameUsesDefault(t *testing.T) {
	at := time.Date(2026, time.October, 19, 14, 5, 0, 0, time.FixedZone("", 2*60*60))
	assert.Equal(t, "Automated test run - Oct 19th 2026, 14:05 (+02:00)", RunName("", at))
	assert.Equal(t, "Nightly - Oct 19th 2026, 14:05 (+02:00)", RunName("Nightly", at))
}

func TestOrdinalDays(t *testing.T) {
	for day, expected := range map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 30: "30th", 31: "31st",
	} {
		assert.Equal(t, expected, ordinal(day))
	}
}

func TestFormatExecutionTimeUTC(t *testing.T) {
	at := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 1st 2026, 09:30 (+00:00)", FormatExecutionTime(at))
}
