package reporter

import (
	"context"
	"fmt"
)

const (
	ColorPass = "3eb991"
	ColorFail = "e01563"
)

// Notification is the end-of-run summary message.
type Notification struct {
	Title string
	Link  string
	Text  string
	Color string
	Icon  string
}

// Notifier delivers the end-of-run summary.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// BuildNotification creates the summary for a run. The color depends on how the run is
// classified; icon may be empty to use the receiver's default.
func BuildNotification(runName, link, icon string, counters Counters) Notification {
	color := ColorFail
	if Classify(counters) == OutcomePass {
		color = ColorPass
	}
	return Notification{
		Title: runName,
		Link:  link,
		Text:  fmt.Sprintf("%d/%d passed", counters.Passes, counters.Total()),
		Color: color,
		Icon:  icon,
	}
}
