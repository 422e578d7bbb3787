package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PresencesMarked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "borai_presences_marked_total",
		Help: "Total presences marked on events",
	})
	EventVotes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "borai_event_votes_total",
		Help: "Total ratings submitted for completed events",
	})
	CommentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "borai_comments_created_total",
		Help: "Total comments and replies created",
	})
	InsigniasUnlocked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "borai_insignias_unlocked_total",
		Help: "Total insignias granted to users",
	})
	FollowTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "borai_follow_transitions_total",
		Help: "Follow graph transitions by kind",
	}, []string{"transition"})
	NotificationsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "borai_notifications_dropped_total",
		Help: "Notifications that could not be delivered",
	}, []string{"channel"})
	PointsAwarded = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "borai_points_awarded",
		Help:    "Point deltas applied to the achievement ledger",
		Buckets: []float64{-5, -1, 0, 1, 5, 10},
	}, []string{"criteria"})
)

func init() {
	prometheus.MustRegister(
		PresencesMarked,
		EventVotes,
		CommentsCreated,
		InsigniasUnlocked,
		FollowTransitions,
		NotificationsDropped,
		PointsAwarded,
	)
}

func IncFollowTransition(transition string) { FollowTransitions.WithLabelValues(transition).Inc() }

func IncNotificationDropped(channel string) { NotificationsDropped.WithLabelValues(channel).Inc() }

func ObservePoints(criteria string, delta float64) {
	PointsAwarded.WithLabelValues(criteria).Observe(delta)
}
