package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PurchasesInitiated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campusmart_purchases_initiated_total", Help: "Total purchases initiated"},
	)
	PurchasesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campusmart_purchases_completed_total", Help: "Total purchases confirmed by buyers"},
	)
	PurchasesCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campusmart_purchases_cancelled_total", Help: "Total purchases cancelled by buyers"},
	)
	OTPEmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campusmart_otp_emails_sent_total", Help: "Total OTP emails delivered"},
	)
)

func Register() {
	prometheus.MustRegister(PurchasesInitiated, PurchasesCompleted, PurchasesCancelled, OTPEmailsSent)
}
