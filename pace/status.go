package pace

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bookpace/bookpace/model"
)

// State classifies the reader's position against today's target page.
type State string

const (
	StateBehind  State = "behind"
	StateOnTrack State = "on-track"
	StateAhead   State = "ahead"
)

// ProgressStatus reports how the reader stands against today's target.
// Delta is CurrentPage minus today's target page: negative when pages are
// still owed, positive when the reader is ahead.
type ProgressStatus struct {
	State   State  `json:"state"`
	Delta   int    `json:"delta"`
	Message string `json:"message"`
}

const (
	msgBehind  = "Read %d more pages to reach today's target."
	msgOnTrack = "You've hit today's target. Nice work!"
	msgAhead   = "You're %d pages ahead of today's target."
)

var printer *message.Printer

func init() {
	message.Set(language.English, msgBehind,
		plural.Selectf(1, "",
			plural.One, "Read %d more page to reach today's target.",
			plural.Other, "Read %d more pages to reach today's target."))
	message.Set(language.English, msgAhead,
		plural.Selectf(1, "",
			plural.One, "You're %d page ahead of today's target.",
			plural.Other, "You're %d pages ahead of today's target."))
	printer = message.NewPrinter(language.English)
}

// TodaysProgressStatus classifies CurrentPage against today's target page.
func TodaysProgressStatus(g model.Goal, today model.Date) ProgressStatus {
	delta := g.CurrentPage - TodaysTargetPage(g, today)

	switch {
	case delta < 0:
		return ProgressStatus{
			State:   StateBehind,
			Delta:   delta,
			Message: printer.Sprintf(msgBehind, -delta),
		}
	case delta > 0:
		return ProgressStatus{
			State:   StateAhead,
			Delta:   delta,
			Message: printer.Sprintf(msgAhead, delta),
		}
	default:
		return ProgressStatus{
			State:   StateOnTrack,
			Delta:   0,
			Message: msgOnTrack,
		}
	}
}
