// Package metrics 定义服务暴露给 Prometheus 的指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InferenceDuration 单次推理耗时，operation: recommendations / patterns / connections
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sanctuary_inference_duration_seconds",
			Help:    "Duration of generative inference calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"operation"},
	)

	// InferenceErrors 推理失败次数，kind 对应 InferenceError 的分类
	InferenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanctuary_inference_errors_total",
			Help: "Total number of failed inference calls",
		},
		[]string{"operation", "kind"},
	)

	// DroppedConnections 模型返回了候选池之外的 contentId
	DroppedConnections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sanctuary_dropped_connections_total",
			Help: "Connections dropped because they referenced content outside the candidate pool",
		},
	)

	// AggregationFailures 单个内容集合加载失败次数
	AggregationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanctuary_aggregation_failures_total",
			Help: "Total number of content collection load failures",
		},
		[]string{"collection"},
	)

	// PublishedItems 最近一次探测到的已发布内容数量
	PublishedItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sanctuary_published_items",
			Help: "Published items per content type seen by the last catalog probe",
		},
		[]string{"content_type"},
	)

	// ExplorerSlots 当前活跃的探索会话数
	ExplorerSlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sanctuary_explorer_slots",
			Help: "Number of live explorer slots",
		},
	)
)
