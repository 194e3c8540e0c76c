package main

import (
	"log/slog"
	"os"

	"gscclean/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("application terminated", "error", err)
		os.Exit(1)
	}
}
