// @title           RFQ Extraction API
// @version         1.0
// @description     Extracts procurement fields from PDF and DOCX uploads and routes a draft Request for Quote to a reviewer.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/handlers"
	"github.com/akolanti/rfqflow/internal/server"
	"github.com/akolanti/rfqflow/internal/staging"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

func main() {
	var configPath, listenAddr string
	flag.StringVar(&configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger_i.Init(config.Default().Log)
		logger_i.NewLogger("main").Error("Could not load config", "error", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	logger_i.Init(cfg.Log)
	var logger = logger_i.NewLogger("main")

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	pipeline, err := app.New(serviceContext, cfg, app.Options{UseRedis: true, SendMail: true})
	if err != nil {
		logger.Error("Could not start the pipeline", "error", err)
		return
	}

	area, err := staging.NewArea(cfg.Server.StagingDir)
	if err != nil {
		logger.Error("Could not prepare the staging area", "error", err)
		return
	}
	logger.Info("Staging uploads", "dir", area.Dir())

	handler := handlers.NewRFQHandler(pipeline.Service, area, cfg.Server, pipeline.RunStoreName)
	srv := server.CreateServer(cfg.Server, handler)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go srv.ShutDownHandler(shutdownParams)
	go srv.ListenAndServe()

	<-stopExecution
	logger.Info("Server stopped")
}
