// Package metrics declares the CRM's prometheus counters.
package metrics

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultUpserted = "upserted"
	ResultFailed   = "failed"
	ResultDropped  = "dropped"

	SourceRelay     = "relay"
	SourceScheduler = "scheduler"

	KindManual    = "manual"
	KindEmail     = "email"
	KindWhatsApp  = "whatsapp"
	KindAutoEmail = "auto_email"
	KindCall      = "call"
)

var (
	// ImportRows counts spreadsheet rows by outcome.
	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_imports_rows_total",
			Help: "Spreadsheet import rows by result",
		},
		[]string{"result"},
	)

	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_emails_sent_total",
			Help: "Emails accepted by the relay provider",
		},
		[]string{"source"},
	)

	FollowUpsLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_followups_logged_total",
			Help: "Follow-ups and call logs recorded",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ImportRows, EmailsSent, FollowUpsLogged)
	})
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	Register()
	return gin.WrapH(promhttp.Handler())
}
