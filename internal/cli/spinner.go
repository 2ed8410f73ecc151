package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/hierletters/pkg/observability"
)

var _ observability.PipelineHooks = (*Spinner)(nil)

// Spinner animates batch progress on one terminal line. It is registered as
// the pipeline hooks while a batch runs, so the counters follow the workers.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	frames []string

	done     chan struct{}
	stopped  chan struct{}
	started  bool
	stopOnce sync.Once

	mu       sync.Mutex
	total    int
	rendered int
	cached   int
	failed   int
	last     string // most recently finished pair, e.g. "A-E"
	width    int    // runes printed on the current line
}

// newSpinner creates a spinner for a batch of total pairs. It stops drawing
// when ctx is cancelled.
func newSpinner(ctx context.Context, w io.Writer, total int) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     spinnerCtx,
		cancel:  cancel,
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		total:   total,
	}
}

// OnBatchStart resets the pair total to the size of the batch.
func (s *Spinner) OnBatchStart(_ context.Context, _ string, pairs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = pairs
}

// OnBatchComplete is a no-op; the summary is printed after Stop.
func (s *Spinner) OnBatchComplete(context.Context, string, observability.BatchStats, time.Duration) {}

// OnPairComplete counts one finished pair.
func (s *Spinner) OnPairComplete(_ context.Context, macro, micro string, cached bool, _ time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err != nil:
		s.failed++
	case cached:
		s.cached++
	default:
		s.rendered++
	}
	s.last = macro + "-" + micro
}

// finished returns the number of pairs seen so far. s.mu must be held.
func (s *Spinner) finished() int {
	return s.rendered + s.cached + s.failed
}

// status formats the progress line without styling, for example
// "Rendering letter pairs 12/25 · A-E · 3 cached · 1 failed".
func (s *Spinner) status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := []string{fmt.Sprintf("Rendering letter pairs %d/%d", s.finished(), s.total)}
	if s.last != "" {
		parts = append(parts, s.last)
	}
	if s.cached > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", s.cached))
	}
	if s.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.failed))
	}
	return strings.Join(parts, " · ")
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(s.frames[i%len(s.frames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	text := s.status()
	s.mu.Lock()
	defer s.mu.Unlock()
	pad := max(0, s.width-utf8.RuneCountInString(text)-2)
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(text), strings.Repeat(" ", pad))
	s.width = utf8.RuneCountInString(text) + 2 + pad
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.done)
		if s.started {
			<-s.stopped
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}
