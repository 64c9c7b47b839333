// AltEat Recommend - Recipe Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alteat-recommend

/*
Package logging provides centralized zerolog-based logging for AltEat Recommend.

A global logger is configured once at startup and shared by every package:

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})

	logging.Info().Str("addr", addr).Msg("HTTP server listening")
	logging.Error().Err(err).Msg("Failed to open recipe store")

# Components

Long lived components derive a child logger once:

	storeLogger := logging.WithComponent("database")

The recommendation engine receives its logger by value at construction and
adds its own component and request fields.

# Request Context

The API middleware stores a request ID (UUID) and a logger in the request
context. Ctx returns a logger with those fields attached:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Similar recipes failed")

# slog Bridge

SlogHandler adapts zerolog to log/slog for libraries that only accept a
*slog.Logger, such as sutureslog:

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()

# Log Injection

Values taken from requests (query parameters, path segments) pass through
SanitizeValue before being logged; user ids are masked with SanitizeUserID.
*/
package logging
