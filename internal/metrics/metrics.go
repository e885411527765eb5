// Package metrics khai báo các Prometheus metrics của ứng dụng.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookEvents đếm số webhook event đã xử lý theo platform và kết quả (processed/ignored/failed/duplicate)
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Tổng số webhook event theo platform và kết quả xử lý",
	}, []string{"platform", "status"})

	// OutboundSends đếm số lần gửi tin nhắn ra platform theo kết quả (ok/failed)
	OutboundSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outbound_sends_total",
		Help: "Tổng số lần gửi tin nhắn outbound theo platform và kết quả",
	}, []string{"platform", "result"})

	// ConversationsCreated đếm số hội thoại mới được tạo theo platform
	ConversationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversations_created_total",
		Help: "Tổng số hội thoại mới được tạo theo platform",
	}, []string{"platform"})
)
