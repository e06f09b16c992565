package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/app"
	"github.com/shrimpsizemoose/examboard/internal/dashboard"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	var examsPath = flag.String("exams", "", "Exam schedule to load at start-up")
	var noClear = flag.Bool("no-clear", false, "Append frames instead of clearing the screen")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	if *examsPath != "" {
		if err := service.LoadExams(*examsPath); err != nil {
			service.Warnings = append(service.Warnings, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := dashboard.New(service, dashboard.NewRenderer(os.Stdout, !*noClear))

	logger.Info.Printf("Exam board started, settings in %s", service.Store.Path())
	if err := board.Run(ctx, os.Stdin); err != nil {
		logger.Error.Fatalf("Exam board failed: %v", err)
	}
	logger.Info.Println("Exam board stopped")
}
