// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package services adapts MoodMate components to suture.Service.

Each wrapper translates one lifecycle pattern into suture's context-aware
Serve:

  - HTTPServerService: ListenAndServe/Shutdown (api-layer)
  - WALRetryLoopService, WALCompactorService: Start/Stop (data-layer)
  - SessionSweeperService: a ticker loop (session-layer)

Return values drive the supervisor:

	error      service crashed, restart with backoff
	ctx.Err()  shutdown requested, normal termination

Every wrapper implements fmt.Stringer so suture can name it in log events.
Wrappers depend on small interfaces rather than the concrete wal and
session types, which keeps this package free of import cycles and lets the
tests use hand-written fakes.
*/
package services
