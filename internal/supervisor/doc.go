// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package supervisor runs the long-lived services of the server under a suture v4
supervisor tree.

	RootSupervisor ("animenotes")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── MaintenanceService (cron: cache sweep, counter store probe)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing maintenance job restarts inside its own layer without touching the
HTTP server. Canceling the context passed to Serve stops both layers, each
service bounded by TreeConfig.ShutdownTimeout.

Supervisor events are logged through sutureslog, which takes an *slog.Logger;
logging.NewSlogLogger provides one backed by zerolog.
*/
package supervisor
