// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/init-js/jshint-mode/pkg/api"
	"github.com/init-js/jshint-mode/pkg/history"
	"github.com/init-js/jshint-mode/pkg/lintconf"
	"github.com/init-js/jshint-mode/pkg/linter"
)

// Exit status when every port in the configured range was in use. Editor
// tooling distinguishes this from other startup failures.
const exitPortRangeExhausted = 2

var (
	host      string
	port      int
	lastPort  int
	logLevel  string
	historyDB string
)

var rootCmd = &cobra.Command{
	Use:   "jshintd",
	Short: "Local JSHint server for editor integrations",
	Long:  `A small localhost HTTP daemon that lints JavaScript buffers posted by editor integrations, avoiding a linter process spawn per check`,
	Run:   runServer,
}

func init() {
	rootCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Address to bind")
	rootCmd.Flags().IntVar(&port, "port", 3003, "First port to try binding")
	rootCmd.Flags().IntVar(&lastPort, "lastport", 3003, "Last port to try binding (inclusive)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&historyDB, "history-db", "", "SQLite file for check history (empty disables)")
}

func runServer(cmd *cobra.Command, args []string) {
	// Setup logging
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	if lastPort < port {
		lastPort = port
	}

	// Check history is opt-in
	var store *history.Storage
	if historyDB != "" {
		store, err = history.NewStorage(historyDB)
		if err != nil {
			log.Fatalf("Failed to open check history: %v", err)
		}
		defer store.Close()
	}

	cfg := api.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.LastPort = lastPort
	cfg.LogLevel = logLevel

	server, err := api.NewServer(cfg, lintconf.NewCache(), linter.NewRegistry(), store)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ln, boundPort, err := api.Listen(host, port, lastPort)
	if errors.Is(err, api.ErrPortRangeExhausted) {
		log.Errorf("Giving up: %v", err)
		os.Exit(exitPortRangeExhausted)
	}
	if err != nil {
		log.Fatalf("Failed to bind: %v", err)
	}

	server.Serve(ln)

	// Parsed by editor tooling to discover the chosen port; goes to stdout
	// while the log stream stays on stderr.
	fmt.Printf("Started JSHint server at http://%s:%d.\n", host, boundPort)

	// Wait for interrupt signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	<-sig
	log.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		log.Errorf("Error stopping server: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
