package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of new user registrations.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"
	TotalUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_total_users",
		Help: "Total number of registered users in the application.",
	})

	// Pet services
	PetsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_pets_created_total",
		Help: "Total number of pets registered.",
	}, []string{"species"})
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_orders_created_total",
		Help: "Total number of orders placed.",
	})
	OrderRevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_order_revenue_total",
		Help: "Sum of order totals at placement time.",
	})
	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_order_status_changes_total",
		Help: "Total number of order status changes by target status.",
	}, []string{"status"})
	AdoptionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_adoptions_created_total",
		Help: "Total number of adoption applications submitted.",
	})
	AdoptionDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_adoption_decisions_total",
		Help: "Total number of adoption status changes by target status.",
	}, []string{"status"})
	AppointmentsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_appointments_created_total",
		Help: "Total number of appointments booked by service.",
	}, []string{"service"})
	VisitsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_visits_recorded_total",
		Help: "Total number of clinic visits recorded.",
	})
	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_emails_sent_total",
		Help: "Total number of notification emails by outcome.",
	}, []string{"status"})
	PasswordResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_password_resets_total",
		Help: "Password reset codes by stage.",
	}, []string{"stage"}) // stage: "requested", "completed" or "rejected"
)
