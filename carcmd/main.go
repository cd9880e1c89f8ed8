package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
}

func main() {
	var (
		configPath = flag.String("config", "config/controller.yaml", "runner configuration (YAML)")
		logLevel   = flag.String("log", "", "override configured log level (trace|debug|info|warn|error)")
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	cfg, err := LoadRunnerConfig(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	if l, ok := logLevels[level]; ok {
		logrus.SetLevel(l)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := NewRunner(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
