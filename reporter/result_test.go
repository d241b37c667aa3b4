package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAtThreshold(t *testing.T) {
	assert.Equal(t, OutcomePass, Classify(Counters{Passes: 9, Fails: 1}))
	assert.Equal(t, OutcomeFail, Classify(Counters{Passes: 8, Fails: 2}))
	assert.Equal(t, OutcomePass, Classify(Counters{Passes: 27, Fails: 3}))
	assert.Equal(t, OutcomePass, Classify(Counters{Passes: 5}))
	assert.Equal(t, OutcomeFail, Classify(Counters{Fails: 5}))
}

func TestClassifyEmptyRunFails(t *testing.T) {
	c := Counters{}
	assert.Equal(t, 0.0, c.PassRatio())
	assert.Equal(t, OutcomeFail, Classify(c))
}

func TestPassRatio(t *testing.T) {
	assert.Equal(t, 0.9, Counters{Passes: 9, Fails: 1}.PassRatio())
	assert.Equal(t, 0.8, Counters{Passes: 8, Fails: 2}.PassRatio())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "passed", StatusPassed.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(3)", Status(3).String())
}

func TestBuildNotification(t *testing.T) {
	n := BuildNotification("Nightly", "https://ci.example.com", ":robot:", Counters{Passes: 9, Fails: 1})
	assert.Equal(t, Notification{
		Title: "Nightly",
		Link:  "https://ci.example.com",
		Text:  "9/10 passed",
		Color: ColorPass,
		Icon:  ":robot:",
	}, n)

	n = BuildNotification("Nightly", "", "", Counters{Passes: 8, Fails: 2})
	assert.Equal(t, ColorFail, n.Color)
	assert.Equal(t, "8/10 passed", n.Text)
	assert.Equal(t, "", n.Icon)
}
