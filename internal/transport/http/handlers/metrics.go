package http_handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		},
		[]string{"status"},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome",
		},
		[]string{"status"},
	)
)

// recordLogin counts one attempt; err == nil is a success.
func recordLogin(err error) {
	loginAttempts.WithLabelValues(loginStatus(err)).Inc()
}

func recordRegistration(err error) {
	registrations.WithLabelValues(registrationStatus(err)).Inc()
}

// loginStatus: success, invalid, invalid_credentials, error
func loginStatus(err error) string {
	if err == nil {
		return "success"
	}
	switch domain.KindOf(err) {
	case domain.KindAuth:
		return "invalid_credentials"
	case domain.KindValidation:
		return "invalid"
	default:
		return "error"
	}
}

// registrationStatus: success, invalid, email_already_exists, error
func registrationStatus(err error) string {
	if err == nil {
		return "success"
	}
	switch domain.KindOf(err) {
	case domain.KindConflict:
		return "email_already_exists"
	case domain.KindValidation:
		return "invalid"
	default:
		return "error"
	}
}
