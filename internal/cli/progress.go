package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/monetr-client/internal/store"
)

// LoadProgress shows how many resources of a load have settled.
type LoadProgress struct {
	bar       *progressbar.ProgressBar
	resources []store.Resource
	settled   int
	mu        sync.Mutex
}

// NewLoadProgress creates a progress bar over resources written to w.
func NewLoadProgress(w io.Writer, description string, resources []store.Resource) *LoadProgress {
	return &LoadProgress{
		resources: resources,
		bar: progressbar.NewOptions(len(resources),
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(w); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		),
	}
}

// Observe advances the bar to the number of resources whose request has succeeded or failed in
// state. It is meant to be passed to store.Subscribe.
func (p *LoadProgress) Observe(state *store.State) {
	settled := 0
	for _, resource := range p.resources {
		switch state.Phase(resource) {
		case store.PhaseSucceeded, store.PhaseFailed:
			settled++
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if settled <= p.settled {
		return
	}
	p.settled = settled
	if err := p.bar.Set(settled); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Settled returns how many resources have settled so far.
func (p *LoadProgress) Settled() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled
}

// Finish completes the bar, including resources that were skipped.
func (p *LoadProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
