package dashboard

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/app"
)

// Board is the terminal shell around the service. All state changes happen on
// the goroutine running Run, so ticks and commands never overlap.
type Board struct {
	svc      *app.Service
	renderer *Renderer
}

func New(svc *app.Service, renderer *Renderer) *Board {
	return &Board{svc: svc, renderer: renderer}
}

func (b *Board) refresh() View {
	res, ref := b.svc.Tick()
	v := BuildView(b.svc.State, res, ref, b.svc.Config.Display.ClockFormat)
	b.renderer.Render(v)
	return v
}

// Run redraws every tick and executes commands read from in until ctx is done
// or the operator quits. The board keeps ticking after in is exhausted.
func (b *Board) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error.Printf("Failed to read commands: %v", err)
		}
	}()

	for _, w := range b.svc.Warnings {
		b.renderer.Error("Warning: %v", w)
	}

	ticker := time.NewTicker(b.svc.Config.Tick())
	defer ticker.Stop()

	b.refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			b.refresh()
		case line, ok := <-lines:
			if !ok {
				logger.Debug.Println("Command input closed")
				lines = nil
				continue
			}
			if err := b.Execute(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				logger.Debug.Printf("Command %q failed: %v", line, err)
				b.renderer.Error("Error: %v", err)
			}
		}
	}
}
