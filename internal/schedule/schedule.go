package schedule

import (
	"time"

	"aircheck/internal/config"
)

// Match identifies the show whose slot covers the evaluated instant.
type Match struct {
	ShowName   string
	ArchiveURL string
	// AlignedStart is the instant truncated to the top of the hour; it is
	// the episode's nominal start time regardless of when the run fired.
	AlignedStart time.Time
}

// Evaluate reports whether a capture should start at the given instant. Slots
// are checked in declaration order and the first match wins, so overlapping
// slots resolve deterministically. Weekdays use 0=Monday through 6=Sunday.
func Evaluate(now time.Time, shows []config.Show) (Match, bool) {
	weekday := mondayWeekday(now.Weekday())
	hour := now.Hour()

	for _, show := range shows {
		if show.Weekday != weekday {
			continue
		}
		for _, slotHour := range show.Hours {
			if slotHour == hour {
				return Match{
					ShowName:     show.Name,
					ArchiveURL:   show.ArchiveURL,
					AlignedStart: AlignToHour(now),
				}, true
			}
		}
	}
	return Match{}, false
}

// AlignToHour truncates an instant to the top of its hour in its own location.
func AlignToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func mondayWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}
