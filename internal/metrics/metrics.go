// Package metrics exposes Prometheus counters for the write paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully persisted posts
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_posts_created_total",
		Help: "Number of posts created.",
	})

	// CommentsCreated counts successfully persisted comments
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_comments_created_total",
		Help: "Number of comments created.",
	})

	// FollowsCreated counts follow edges inserted
	FollowsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_follows_created_total",
		Help: "Number of follow edges created.",
	})

	// FollowsDeleted counts follow edges removed
	FollowsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_follows_deleted_total",
		Help: "Number of follow edges deleted.",
	})
)
