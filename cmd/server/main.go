package main

import (
	"log/slog"
	"os"

	"kpi/internal/app/server"
)

func main() {
	if err := server.Run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
