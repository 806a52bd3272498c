// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package middleware provides the HTTP middleware shared by the API router:
// request ID propagation into the logging context and Prometheus request
// instrumentation. Both use the func(http.Handler) http.Handler shape so
// they can be passed straight to chi's Use.
package middleware
