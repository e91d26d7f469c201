package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsIngested counts notification events accepted for classification.
	NotificationsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "notifications_ingested_total",
		Help:      "Notification events accepted for classification.",
	})

	// NotificationsClassified counts events that produced a subscription record.
	NotificationsClassified = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "notifications_classified_total",
		Help:      "Notification events classified as subscription payments.",
	})

	// NotificationsDropped counts events rejected by the classifier, by reason.
	NotificationsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "notifications_dropped_total",
		Help:      "Notification events that did not produce a subscription record.",
	}, []string{"reason"})

	// SyncJobsEnqueued counts remote sync jobs queued for the worker pool.
	SyncJobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "sync_jobs_enqueued_total",
		Help:      "Remote sync jobs queued for the worker pool.",
	})

	// SyncJobsDropped counts sync jobs dropped because the queue was full.
	SyncJobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "sync_jobs_dropped_total",
		Help:      "Remote sync jobs dropped because the queue was full.",
	})

	// SyncFailures counts sync jobs that failed at the remote store.
	SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "sync_failures_total",
		Help:      "Remote sync jobs that failed at the document store.",
	})

	// RemindersSent counts renewal reminder pushes delivered.
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tiyin",
		Name:      "reminders_sent_total",
		Help:      "Renewal reminder push notifications sent.",
	})
)
