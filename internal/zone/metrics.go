package zone

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udisondev/zonesrv/internal/protocol"
)

const metricsNamespace = "zonesrv"

// Metrics holds the prometheus collectors shared by all zones, labelled by zone id.
// A nil *Metrics disables collection.
type Metrics struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	handleFailures  *prometheus.CounterVec
	notices         *prometheus.CounterVec
	respawns        *prometheus.CounterVec
	aliveNpcs       *prometheus.GaugeVec
	players         *prometheus.GaugeVec
}

// NewMetrics creates the zone collectors and registers them in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "zone_commands_total",
			Help:      "Commands processed by zone actors.",
		}, []string{"zone", "command"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "zone_command_duration_seconds",
			Help:      "Time spent handling one command, including handle calls.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		}, []string{"zone", "command"}),
		handleFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "zone_handle_failures_total",
			Help:      "Player handle calls that failed or timed out.",
		}, []string{"zone", "op"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "zone_notices_sent_total",
			Help:      "Notices enqueued to player handles.",
		}, []string{"zone", "family"}),
		respawns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "zone_npc_respawns_total",
			Help:      "Creature instances revived.",
		}, []string{"zone"}),
		aliveNpcs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "zone_npcs_alive",
			Help:      "Alive creature instances.",
		}, []string{"zone"}),
		players: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "zone_players",
			Help:      "Characters currently in the zone.",
		}, []string{"zone"}),
	}

	reg.MustRegister(
		m.commands,
		m.commandDuration,
		m.handleFailures,
		m.notices,
		m.respawns,
		m.aliveNpcs,
		m.players,
	)
	return m
}

func (m *Metrics) forZone(id int32) zoneMetrics {
	if m == nil {
		return zoneMetrics{}
	}
	return zoneMetrics{m: m, zone: strconv.Itoa(int(id))}
}

// zoneMetrics binds Metrics to one zone label. Zero value is a no-op.
type zoneMetrics struct {
	m    *Metrics
	zone string
}

func (zm zoneMetrics) commandDone(kind string, took time.Duration) {
	if zm.m == nil {
		return
	}
	zm.m.commands.WithLabelValues(zm.zone, kind).Inc()
	zm.m.commandDuration.WithLabelValues(zm.zone, kind).Observe(took.Seconds())
}

func (zm zoneMetrics) handleFailure(op string) {
	if zm.m == nil {
		return
	}
	zm.m.handleFailures.WithLabelValues(zm.zone, op).Inc()
}

func (zm zoneMetrics) noticesSent(family protocol.Family, n int) {
	if zm.m == nil {
		return
	}
	zm.m.notices.WithLabelValues(zm.zone, family.String()).Add(float64(n))
}

func (zm zoneMetrics) respawned(n int) {
	if zm.m == nil {
		return
	}
	zm.m.respawns.WithLabelValues(zm.zone).Add(float64(n))
}

func (zm zoneMetrics) aliveNpcs(n int) {
	if zm.m == nil {
		return
	}
	zm.m.aliveNpcs.WithLabelValues(zm.zone).Set(float64(n))
}

func (zm zoneMetrics) players(n int) {
	if zm.m == nil {
		return
	}
	zm.m.players.WithLabelValues(zm.zone).Set(float64(n))
}
