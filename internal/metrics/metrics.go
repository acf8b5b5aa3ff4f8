// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はドメイン操作メトリクス収集のインターフェース。
// サービス層から利用する。
type Recorder interface {
	RecordRegistration()
	RecordLogin(success bool)
	RecordPropertyAdded()
	RecordPropertyDeleted()
	RecordReviewSubmitted()
	RecordPaymentConfirmed(amount float64)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	registrations     prometheus.Counter
	loginSuccess      prometheus.Counter
	loginFail         prometheus.Counter
	propertiesAdded   prometheus.Counter
	propertiesDeleted prometheus.Counter
	reviewsSubmitted  prometheus.Counter
	paymentsConfirmed prometheus.Counter
	paymentAmount     prometheus.Histogram
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_registrations_total",
			Help: "ユーザー登録成功の合計数",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		propertiesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_properties_added_total",
			Help: "登録された物件の合計数",
		}),
		propertiesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_properties_deleted_total",
			Help: "削除された物件の合計数",
		}),
		reviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_reviews_submitted_total",
			Help: "投稿されたレビューの合計数",
		}),
		paymentsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bashachai_payments_confirmed_total",
			Help: "確認された模擬支払いの合計数",
		}),
		paymentAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bashachai_payment_amount",
			Help:    "確認された模擬支払いの金額分布（通貨単位）",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 8),
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bashachai_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.registrations,
		c.loginSuccess,
		c.loginFail,
		c.propertiesAdded,
		c.propertiesDeleted,
		c.reviewsSubmitted,
		c.paymentsConfirmed,
		c.paymentAmount,
		c.httpStatus,
	)

	return c
}

// RecordRegistration はユーザー登録成功を記録する。
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin はログイン試行の成否を記録する。
func (c *Collector) RecordLogin(success bool) {
	if success {
		c.loginSuccess.Inc()
		return
	}
	c.loginFail.Inc()
}

// RecordPropertyAdded は物件登録を記録する。
func (c *Collector) RecordPropertyAdded() {
	c.propertiesAdded.Inc()
}

// RecordPropertyDeleted は物件削除を記録する。
func (c *Collector) RecordPropertyDeleted() {
	c.propertiesDeleted.Inc()
}

// RecordReviewSubmitted はレビュー投稿を記録する。
func (c *Collector) RecordReviewSubmitted() {
	c.reviewsSubmitted.Inc()
}

// RecordPaymentConfirmed は模擬支払いの確認と金額を記録する。
func (c *Collector) RecordPaymentConfirmed(amount float64) {
	c.paymentsConfirmed.Inc()
	c.paymentAmount.Observe(amount)
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
