// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package main is the entry point for the Tunila recommendation server.

Tunila recommends songs by content: titles and genres are turned into TF-IDF
vectors, and catalog songs are ranked by their mean cosine similarity to the
songs a user has liked. The server also serves the catalog, the user's liked
songs, and like/unlike updates for the Tunila web client.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("tunila")
	├── DataSupervisor ("data-layer")
	│   └── Store health (periodic ping, tunila_store_up)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional config.yaml and environment
 2. Logging: zerolog with JSON/console output modes
 3. Store: MongoDB or embedded BadgerDB, wrapped with metrics and a circuit breaker
 4. Recommendation engine
 5. Authentication: JWT cookie verification or no-auth mode
 6. Supervisor tree and HTTP server

# Configuration

	STORE_BACKEND=mongo|badger     catalog backend (default mongo)
	MONGO_URI, MONGO_DATABASE      MongoDB connection (default db FYP_DEVELOPMENT)
	BADGER_PATH, SEED_FILE         embedded catalog and optional import file
	HTTP_HOST, HTTP_PORT           listener (default 0.0.0.0:5000)
	AUTH_MODE=none|jwt, JWT_SECRET token verification for like/unlike
	CORS_ORIGINS                   comma-separated allowed origins
	LOG_LEVEL, LOG_FORMAT          logging

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests, then the store is closed.

# Example Usage

Against the production MongoDB:

	export MONGO_URI=mongodb://localhost:27017
	export AUTH_MODE=jwt
	export JWT_SECRET=shared-with-the-web-backend
	./tunila

Standalone with a seeded embedded catalog:

	export STORE_BACKEND=badger
	export BADGER_PATH=/var/lib/tunila
	export SEED_FILE=/etc/tunila/songs.json
	export AUTH_MODE=none
	./tunila
*/
package main
