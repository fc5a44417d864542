// 指示: miu200521358
// Package metrics はリターゲットと再生操作のPrometheusメトリクスを記録する。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mu_vrma_player"

// Recorder は専用レジストリ上のメトリクス群を表す。
type Recorder struct {
	registry *prometheus.Registry

	// tracksTotal はトラック分類結果の件数
	tracksTotal *prometheus.CounterVec
	// motionsTotal はモーション構築の件数
	motionsTotal *prometheus.CounterVec
	// playbackTransitions は再生状態遷移の件数
	playbackTransitions *prometheus.CounterVec
	// playbackErrors は再生操作の呼び出し順違反の件数
	playbackErrors *prometheus.CounterVec
	// activeSessions は現在のセッション数
	activeSessions prometheus.Gauge
}

// NewRecorder はメトリクス群を生成する。
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		tracksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retarget_tracks_total",
				Help:      "Total number of classified source tracks by result",
			},
			[]string{"result"},
		),
		motionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retarget_motions_total",
				Help:      "Total number of built motion models by source kind",
			},
			[]string{"source"},
		),
		playbackTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playback_transitions_total",
				Help:      "Total number of playback state transitions by target state",
			},
			[]string{"state"},
		),
		playbackErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "playback_errors_total",
				Help:      "Total number of rejected playback operations by operation",
			},
			[]string{"operation"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "playback_active_sessions",
				Help:      "Number of bound playback sessions",
			},
		),
	}
}

// Registry はレジストリを返す。
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler は /metrics 用のHTTPハンドラを返す。
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordTrack はトラック分類結果を記録する。
func (r *Recorder) RecordTrack(result string) {
	if r == nil {
		return
	}
	r.tracksTotal.WithLabelValues(result).Inc()
}

// RecordMotion はモーション構築を記録する。
func (r *Recorder) RecordMotion(source string) {
	if r == nil {
		return
	}
	r.motionsTotal.WithLabelValues(source).Inc()
}

// RecordTransition は再生状態遷移を記録する。
func (r *Recorder) RecordTransition(state string) {
	if r == nil {
		return
	}
	r.playbackTransitions.WithLabelValues(state).Inc()
}

// RecordPlaybackError は拒否された再生操作を記録する。
func (r *Recorder) RecordPlaybackError(operation string) {
	if r == nil {
		return
	}
	r.playbackErrors.WithLabelValues(operation).Inc()
}

// SetActiveSessions は現在のセッション数を記録する。
func (r *Recorder) SetActiveSessions(count int) {
	if r == nil {
		return
	}
	r.activeSessions.Set(float64(count))
}

// TrackCount はトラック分類結果の件数を返す。
func (r *Recorder) TrackCount(result string) prometheus.Counter {
	return r.tracksTotal.WithLabelValues(result)
}

// TransitionCount は再生状態遷移の件数を返す。
func (r *Recorder) TransitionCount(state string) prometheus.Counter {
	return r.playbackTransitions.WithLabelValues(state)
}

// PlaybackErrorCount は拒否された再生操作の件数を返す。
func (r *Recorder) PlaybackErrorCount(operation string) prometheus.Counter {
	return r.playbackErrors.WithLabelValues(operation)
}

// ActiveSessions は現在のセッション数を返す。
func (r *Recorder) ActiveSessions() prometheus.Gauge {
	return r.activeSessions
}
