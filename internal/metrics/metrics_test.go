// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recommend/{userID}", "200"))

	RecordAPIRequest("GET", "/api/recommend/{userID}", "200", 12*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/recommend/{userID}", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		status   string
		returned int
	}{
		{"ranked", 10},
		{"fallback", 3},
		{"no_recommendations", 0},
		{"error", 0},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(tt.status))
			RecordRecommendation(tt.status, 5*time.Millisecond, tt.returned)
			after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(tt.status))
			if after-before != 1 {
				t.Errorf("recommendations_total{%s} delta = %v, want 1", tt.status, after-before)
			}
		})
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errsBefore := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("mongo", "fetch_all"))

	RecordStoreOperation("mongo", "fetch_all", time.Millisecond, nil)
	RecordStoreOperation("mongo", "fetch_all", time.Millisecond, errors.New("timeout"))

	if got := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("mongo", "fetch_all")); got-errsBefore != 1 {
		t.Errorf("store_operation_errors_total delta = %v, want 1", got-errsBefore)
	}
}

func TestSetStoreUp(t *testing.T) {
	SetStoreUp("badger", true)
	if got := testutil.ToFloat64(StoreUp.WithLabelValues("badger")); got != 1 {
		t.Errorf("store_up = %v, want 1", got)
	}
	SetStoreUp("badger", false)
	if got := testutil.ToFloat64(StoreUp.WithLabelValues("badger")); got != 0 {
		t.Errorf("store_up = %v, want 0", got)
	}
}

func TestRecordLike(t *testing.T) {
	before := testutil.ToFloat64(LikesTotal.WithLabelValues("like", "success"))
	RecordLike("like", "success")
	if got := testutil.ToFloat64(LikesTotal.WithLabelValues("like", "success")); got-before != 1 {
		t.Errorf("likes_total delta = %v, want 1", got-before)
	}
}
