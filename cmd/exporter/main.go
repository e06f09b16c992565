package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/app"
	"github.com/shrimpsizemoose/examboard/internal/metrics"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	for _, w := range service.Warnings {
		logger.Error.Printf("Warning: %v", w)
	}

	path := service.Config.Export.TextfilePath
	if path == "" {
		logger.Error.Fatalf("export.textfile_path is not specified in config")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err = scheduler.Every(service.Config.Export.IntervalSeconds).Seconds().Do(func() {
		res, ref := service.Tick()
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Error.Printf("Export failed: %v", err)
			return
		}
		logger.Debug.Printf("Exported %d exams at %s", len(res.Statuses), ref.Format(time.RFC3339))
	})
	if err != nil {
		logger.Error.Fatalf("Failed to schedule export: %v", err)
	}

	scheduler.StartAsync()
	logger.Info.Printf("Exporting exam status to %s every %ds", path, service.Config.Export.IntervalSeconds)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	scheduler.Stop()
	logger.Info.Println("Exporter stopped")
}
