package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/examboard/internal/models"
)

// errQuit asks the loop to stop.
var errQuit = errors.New("quit")

const helpText = `Commands:
offset <seconds>   - Shift the displayed time (-3600..3600)
room <name>        - Set the exam room label
zoom <factor>      - One of 0.8 0.9 1.0 1.1 1.2 1.5 2.0
theme light|dark   - Switch colours
msg [text]         - Set the announcement (expires in 3 days), empty clears it
load <path>        - Load an exam schedule JSON file
show               - Redraw now
help               - Show this message
quit               - Exit`

type commandHandler func(args string) error

func (b *Board) routeCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"offset": b.handleOffset,
		"room":   b.handleRoom,
		"zoom":   b.handleZoom,
		"theme":  b.handleTheme,
		"msg":    b.handleMessage,
		"load":   b.handleLoad,
		"show":   b.handleShow,
		"help":   b.handleHelp,
		"quit":   b.handleQuit,
		"exit":   b.handleQuit,
	}
	handler, found := commands[cmd]
	return handler, found
}

// Execute runs one operator command line. Errors are for the operator, not fatal.
func (b *Board) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd, args, _ := strings.Cut(line, " ")
	handler, ok := b.routeCommands(strings.ToLower(cmd))
	if !ok {
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return handler(strings.TrimSpace(args))
}

func (b *Board) handleOffset(args string) error {
	offset, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("usage: offset <seconds>")
	}
	if err := b.svc.UpdateSettings(func(s *models.Settings) { s.TimeOffset = offset }); err != nil {
		return err
	}
	b.renderer.Notice("Settings saved")
	return nil
}

func (b *Board) handleRoom(args string) error {
	if err := b.svc.UpdateSettings(func(s *models.Settings) { s.ExamRoom = args }); err != nil {
		return err
	}
	b.renderer.Notice("Settings saved")
	return nil
}

func (b *Board) handleZoom(args string) error {
	zoom, err := strconv.ParseFloat(args, 64)
	if err != nil {
		return fmt.Errorf("usage: zoom <factor>")
	}
	if err := b.svc.UpdateSettings(func(s *models.Settings) { s.ZoomFactor = zoom }); err != nil {
		return err
	}
	b.renderer.Notice("Settings saved")
	return nil
}

func (b *Board) handleTheme(args string) error {
	var dark bool
	switch strings.ToLower(args) {
	case "dark":
		dark = true
	case "light":
		dark = false
	default:
		return fmt.Errorf("usage: theme light|dark")
	}
	if err := b.svc.UpdateSettings(func(s *models.Settings) { s.IsDarkMode = dark }); err != nil {
		return err
	}
	b.renderer.Notice("Settings saved")
	return nil
}

func (b *Board) handleMessage(args string) error {
	if err := b.svc.SetMessage(args); err != nil {
		return err
	}
	b.renderer.Notice("Message saved")
	return nil
}

func (b *Board) handleLoad(args string) error {
	if args == "" {
		return fmt.Errorf("usage: load <path>")
	}
	if err := b.svc.LoadExams(args); err != nil {
		return err
	}
	b.renderer.Notice("Loaded %d exams", len(b.svc.State.Exams))
	return nil
}

func (b *Board) handleShow(string) error {
	b.refresh()
	return nil
}

func (b *Board) handleHelp(string) error {
	b.renderer.Notice(helpText)
	return nil
}

func (b *Board) handleQuit(string) error {
	return errQuit
}
