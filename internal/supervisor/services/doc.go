// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

// Package services adapts Tunila components to suture.Service so they can
// run under the supervisor tree.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully.
//   - StoreHealthService pings the song store on an interval and exports
//     the result as the tunila_store_up gauge.
package services
