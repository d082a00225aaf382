package main

import (
	"flag"
	"net/http"

	"github.com/studyhive-dev/studyhive/internal/config"
	"github.com/studyhive-dev/studyhive/internal/logger"
	"github.com/studyhive-dev/studyhive/internal/router"
	"github.com/studyhive-dev/studyhive/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "err", err)
		return
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.Addr)
	if err := http.ListenAndServe(cfg.Public.Addr, r); err != nil {
		logger.Log.Error("server stopped", "err", err)
	}
}
