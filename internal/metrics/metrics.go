package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	donationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_service_donations_total",
		Help: "Total number of donations processed",
	})

	donationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_service_donation_failures_total",
		Help: "Total number of rejected or failed donations",
	})

	badgesMintedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_service_badges_minted_total",
		Help: "Total number of newly minted donor badges",
	})

	uniqueDonorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_service_unique_donors_total",
		Help: "Total number of first-time donors",
	})

	batchDonationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_service_batch_donations_total",
		Help: "Total number of batch donation calls",
	})
)

// ObserveDonation 记录一次完成的捐赠
func ObserveDonation(wasNewDonor, mintedNew bool) {
	donationsTotal.Inc()
	if wasNewDonor {
		uniqueDonorsTotal.Inc()
	}
	if mintedNew {
		badgesMintedTotal.Inc()
	}
}

// ObserveDonationFailure 记录一次失败的捐赠
func ObserveDonationFailure() {
	donationFailuresTotal.Inc()
}

// ObserveBatch 记录一次批量捐赠调用
func ObserveBatch() {
	batchDonationsTotal.Inc()
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
