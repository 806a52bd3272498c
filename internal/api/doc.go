// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package api serves the Tunila HTTP API on a Chi router.

Routes:

	GET  /                                 "API Working"
	GET  /health/live                      liveness, never touches the store
	GET  /health/ready                     readiness, pings the store (503 when down)
	GET  /metrics                          Prometheus exposition
	GET  /api/recommend/{userID}?limit=N   content-based recommendations
	GET  /api/stats/recommend              engine counters
	GET  /api/songs                        whole catalog
	GET  /api/songs/popular                top 20 by like count
	GET  /api/songs/liked-songs/{userID}   songs the user liked
	POST /api/songs/like                   {"songId": "..."} (auth required in jwt mode)
	POST /api/songs/unlike                 {"songId": "..."} (auth required in jwt mode)

Global middleware, in order: request ID, real IP, panic recovery, CORS,
Prometheus metrics. The /api routes are additionally rate limited per IP.

Response bodies keep the field names the Tunila web client reads
(success, recommended_songs, songs, likedSongs, likedBy, message). Errors use
respondError:

	{"success": false, "status": "error", "error": "...", "message": "..."}

Status codes for /api/recommend follow the result status: ranked, fallback
and no_recommendations are 200; an invalid limit is 400; an unavailable store
is 503.
*/
package api
