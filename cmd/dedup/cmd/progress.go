package cmd

import (
	"io"

	"github.com/pterm/pterm"
)

// progress pinta una barra por fase usando pterm.
type progress struct {
	w   io.Writer
	bar *pterm.ProgressbarPrinter
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) Start(phase string, total int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(phase).
		WithWriter(p.w).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return
	}
	p.bar = bar
}

func (p *progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progress) Stop() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}
