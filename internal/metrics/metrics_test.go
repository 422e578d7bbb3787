package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExposure(t *testing.T) {
	PresencesMarked.Inc()
	EventVotes.Inc()
	CommentsCreated.Inc()
	InsigniasUnlocked.Inc()
	IncFollowTransition("request_sent")
	IncNotificationDropped("push")
	ObservePoints("comments", 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, m := range []string{
		"borai_presences_marked_total",
		"borai_event_votes_total",
		"borai_comments_created_total",
		"borai_insignias_unlocked_total",
		`borai_follow_transitions_total{transition="request_sent"}`,
		`borai_notifications_dropped_total{channel="push"}`,
		"borai_points_awarded_bucket",
	} {
		assert.Contains(t, body, m)
	}
}
