// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package supervisor runs MoodMate's long-lived goroutines under a suture v4
supervisor tree.

Every background loop (WAL retry, BadgerDB value log GC, session sweeping,
the HTTP listener) is wrapped as a suture.Service in the services
subpackage and added to one of three layers. A service that panics or
returns an error is restarted with backoff. Supervisor events are logged
through sutureslog into the zerolog-backed slog handler from
internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewWALRetryLoopService(retry))
	tree.AddSessionService(services.NewSessionSweeperService(manager, cfg.Session.SweepInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)

Serve returns once ctx is canceled and every service has stopped or timed
out. UnstoppedServiceReport names the ones that timed out.
*/
package supervisor
