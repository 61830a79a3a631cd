package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every collector this service registers
const Namespace = "mawritual"

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: Namespace, Name: name, Help: help}, labels)
}

func histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Namespace: Namespace, Name: name, Help: help, Buckets: buckets}, labels)
}

func gauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{Namespace: Namespace, Name: name, Help: help})
}

// HTTP
var (
	HTTPRequestsTotal    = counterVec(MetricNameHTTPRequestsTotal, HelpTextHTTPRequestsTotal, LabelMethod, LabelPath, LabelStatus)
	HTTPRequestDuration  = histogramVec(MetricNameHTTPRequestDuration, HelpTextHTTPRequestDuration, HTTPLatencyBuckets, LabelMethod, LabelPath)
	HTTPRequestsInFlight = gauge(MetricNameHTTPRequestsInFlight, HelpTextHTTPRequestsInFlight)
)

// Events
var (
	EventsPublished    = counterVec(MetricNameEventsPublished, HelpTextEventsPublished, LabelType)
	EventHandlerErrors = counterVec(MetricNameEventHandlerErrors, HelpTextEventHandlerErrors, LabelType)
)

// Rituals
var (
	RitualsTotal   = counterVec(MetricNameRitualsTotal, HelpTextRitualsTotal, LabelKind, LabelOutcome)
	RitualDuration = histogramVec(MetricNameRitualDuration, HelpTextRitualDuration, prometheus.DefBuckets, LabelKind)
	RewardsMinted  = counterVec(MetricNameRewardsMinted, HelpTextRewardsMinted, LabelKind, LabelItem)
	ItemsBurned    = counterVec(MetricNameItemsBurned, HelpTextItemsBurned, LabelKind, LabelItem)
	FallbackMints  = counterVec(MetricNameFallbackMints, HelpTextFallbackMints, LabelItem)
	SuccessBps     = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      MetricNameSuccessBps,
		Help:      HelpTextSuccessBps,
		Buckets:   SuccessBpsBuckets,
	})
	SacrificeNonce      = gauge(MetricNameSacrificeNonce, HelpTextSacrificeNonce)
	PreviewCacheLookups = counterVec(MetricNamePreviewCacheLookup, HelpTextPreviewCacheLookup, LabelResult)
)

// Admin
var (
	ConfigUpdates  = counterVec(MetricNameConfigUpdates, HelpTextConfigUpdates, LabelOperation)
	ConfigRevision = gauge(MetricNameConfigRevision, HelpTextConfigRevision)
)
