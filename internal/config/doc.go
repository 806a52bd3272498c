// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package config loads and validates the Tunila server configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths that exists
 3. Environment variables from a fixed mapping table (see envTransformFunc)

Environment variables not in the table are ignored.

# Environment Variables

HTTP server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (default 5000)
  - HTTP_REQUEST_TIMEOUT (default 10s), HTTP_SHUTDOWN_TIMEOUT (default 15s)

Store:
  - STORE_BACKEND: mongo (default) or badger
  - MONGO_URI, MONGO_DATABASE (default FYP_DEVELOPMENT), MONGO_COLLECTION (default songs)
  - BADGER_PATH, BADGER_IN_MEMORY, SEED_FILE
  - STORE_BREAKER_ENABLED, STORE_BREAKER_FAILURES, STORE_BREAKER_TIMEOUT
  - STORE_HEALTH_INTERVAL

Recommendations:
  - RECOMMEND_LIMIT (default 10), RECOMMEND_MAX_LIMIT (default 100)

Security:
  - AUTH_MODE: none (default) or jwt; JWT_SECRET, JWT_COOKIE_NAME (default token)
  - CORS_ORIGINS (comma separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
