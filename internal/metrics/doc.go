// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package metrics defines the Prometheus collectors exported at /metrics.

All collectors are registered with the default registry through promauto, so
importing the package is enough to expose them. Callers use the Record*
helpers rather than touching the vectors directly.

# Available Metrics

HTTP:
  - tunila_api_requests_total{method,endpoint,status}
  - tunila_api_request_duration_seconds{method,endpoint}
  - tunila_api_active_requests

Recommendations:
  - tunila_recommendations_total{status}
  - tunila_recommendation_duration_seconds{status}
  - tunila_recommendation_result_size

Store:
  - tunila_store_operation_duration_seconds{backend,operation}
  - tunila_store_operation_errors_total{backend,operation}
  - tunila_store_up{backend}
  - tunila_likes_total{action,result}

Circuit breaker:
  - tunila_circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - tunila_circuit_breaker_requests_total{name,result}
  - tunila_circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
