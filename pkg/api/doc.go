// Package api provides the HTTP server for the jshint-mode lint daemon.
//
// The server exposes exactly one meaningful route:
//   - POST /check - lint the submitted source and return a plain-text report
//
// Every other route and method answers 200 with a fixed greeting, which
// doubles as the health check for editor integrations probing whether the
// daemon is up.
//
// # Architecture
//
// The server is built on the Gin web framework and integrates with:
//   - the configuration cache (per-path .jshintrc loading)
//   - the linter registry (jshint / jslint backends)
//   - optional SQLite check history
//
// # Example Usage
//
//	cfg := api.DefaultConfig()
//	server, err := api.NewServer(cfg, lintconf.NewCache(), linter.NewRegistry(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ln, port, err := api.Listen(cfg.Host, cfg.Port, cfg.LastPort)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server.Serve(ln)
//	defer server.Stop()
//
// # Listener bootstrap
//
// Listen tries each port in [port, lastport] in order, advancing past ports
// that are already in use. Exhausting the range yields
// [ErrPortRangeExhausted], which the CLI maps to exit status 2 so editor
// tooling can tell "no free port" apart from other startup faults.
package api
