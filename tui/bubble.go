package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/internal/ui"
)

// seekStep is how far the seek keys jump, in seconds.
const seekStep = 10

// statefulBubble holds everything the monitor shows. It is only touched by the
// bubbletea goroutine; player state arrives as messages sent from the host loop.
type statefulBubble struct {
	state  state
	keymap *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	options *Options
	send    func(tea.Msg)

	playerState event.State
	quality     event.Quality
	lastError   mo.Option[event.ErrorKind]
	failure     error

	videoID  string
	position float64
	duration float64
	loaded   float32

	rate  float32
	rates []float32

	looping, shuffled bool

	width, height int
}

func newBubble(options *Options) *statefulBubble {
	b := &statefulBubble{
		state:       loadingState,
		keymap:      newKeymap(),
		notifier:    &ui.Model{},
		options:     options,
		send:        func(tea.Msg) {},
		playerState: event.StateUnstarted,
		quality:     event.QualityUnknown,
		rate:        1,
	}

	b.helpC = help.New()

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	b.progressC = progress.New(progress.WithDefaultGradient())

	if options.Ready {
		b.state = monitorState
	}
	return b
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.progressC.Width = lo.Clamp(b.width, 10, 80)
	b.helpC.Width = b.width
}

func (b *statefulBubble) raiseError(err error) {
	b.failure = err
	b.state = errorState
}

func (b *statefulBubble) result() *Result {
	return &Result{
		VideoID:  b.videoID,
		Position: b.position,
		Duration: b.duration,
	}
}

// nextRate returns the neighbour of the current rate in the available rates, or the current rate at either end.
func (b *statefulBubble) nextRate(step int) float32 {
	if len(b.rates) == 0 {
		return b.rate
	}

	_, i, found := lo.FindIndexOf(b.rates, func(r float32) bool { return r >= b.rate })
	switch {
	case !found && step > 0:
		return b.rate
	case !found:
		return b.rates[len(b.rates)-1]
	case b.rates[i] != b.rate && step > 0:
		return b.rates[i]
	}

	return b.rates[lo.Clamp(i+step, 0, len(b.rates)-1)]
}
