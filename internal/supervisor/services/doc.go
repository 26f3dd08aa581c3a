// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

/*
Package services adapts the server's long-running components to suture's
Serve(ctx) error contract.

HTTPServerService wraps *http.Server: ListenAndServe runs in a goroutine and
context cancellation triggers Shutdown with a bounded timeout.

MaintenanceService runs robfig/cron jobs: a periodic sweep of expired
response cache entries and a counter store probe that keeps the
counter_store_up gauge current. Jobs never overlap themselves and a panicking
job is recovered and logged.
*/
package services
