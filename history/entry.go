package history

import (
	"fmt"
	"time"
)

// Entry is the resume point of a single video.
type Entry struct {
	VideoID  string    `json:"video_id"`
	Playlist string    `json:"playlist,omitempty"`
	Position float64   `json:"position"`
	Duration float64   `json:"duration"`
	Updated  time.Time `json:"updated"`
}

// Progress is the watched share in [0, 1]. Zero when the duration is unknown.
func (e *Entry) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return min(e.Position/e.Duration, 1)
}

// Finished reports whether resuming makes no sense anymore.
func (e *Entry) Finished() bool {
	return e.Duration > 0 && e.Duration-e.Position < finishedMargin
}

func (e *Entry) String() string {
	if e.Duration <= 0 {
		return fmt.Sprintf("%s at %s", e.VideoID, clock(e.Position))
	}
	return fmt.Sprintf("%s at %s / %s (%.0f%%)", e.VideoID, clock(e.Position), clock(e.Duration), e.Progress()*100)
}

func clock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
