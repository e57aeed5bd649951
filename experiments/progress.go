package experiments

import (
	"fmt"

	"github.com/gosuri/uilive"
)

// progressPrinter rewrites a single terminal line with the current
// iteration and delta while a solve runs.
type progressPrinter struct {
	name   string
	writer *uilive.Writer
}

func newProgressPrinter(name string) *progressPrinter {
	return &progressPrinter{
		name:   name,
		writer: uilive.New(),
	}
}

func (p *progressPrinter) start() {
	p.writer.Start()
}

func (p *progressPrinter) stop() {
	p.writer.Stop()
}

// update is wired as the solver's OnIteration callback.
func (p *progressPrinter) update(iteration int, delta float64) {
	fmt.Fprintf(p.writer, "%s: iteration %d, delta %.4g\n", p.name, iteration, delta)
}
