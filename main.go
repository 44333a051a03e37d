package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/iptecharch/snmp-server/pkg/config"
	"github.com/iptecharch/snmp-server/pkg/server"
)

var configFile string
var debug bool
var trace bool

var versionFlag bool
var version = "dev"
var commit = ""

func main() {
	pflag.StringVarP(&configFile, "config", "c", "", "config file path")
	pflag.BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	pflag.BoolVarP(&trace, "trace", "t", false, "set log level to TRACE")
	pflag.BoolVarP(&versionFlag, "version", "v", false, "print version")
	pflag.Parse()

	if versionFlag {
		os.Stdout.WriteString(version + "-" + commit + "\n")
		return
	}

	// logger level is written exactly once, here; everything below
	// receives the configured entry through constructors
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	if trace {
		logger.SetLevel(log.TraceLevel)
	}
	le := log.NewEntry(logger)

	cfg, err := config.New(configFile)
	if err != nil {
		le.Errorf("failed to read config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	setupCloseHandler(le, cancel)

	s, err := server.New(cfg, le)
	if err != nil {
		le.Errorf("failed to create server: %v", err)
		os.Exit(1)
	}
	if err := s.Serve(ctx); err != nil {
		le.Errorf("failed to run server: %v", err)
		os.Exit(1)
	}
}

func setupCloseHandler(le *log.Entry, cancelFn context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		le.Infof("received signal %v, shutting down", sig)
		cancelFn()
	}()
}
