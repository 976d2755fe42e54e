package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the diagnostics counters of one world. Collectors are
// registered on the Registerer handed to NewMetrics; a nil Registerer keeps
// them unregistered, which is what tests use.
type Metrics struct {
	Frames            prometheus.Counter
	EntitiesSpawned   prometheus.Counter
	EntitiesDestroyed prometheus.Counter
	Collisions        *prometheus.CounterVec
	TasksScheduled    prometheus.Counter
	TasksFinished     prometheus.Counter
	Transitions       prometheus.Counter
	LiveEntities      prometheus.Gauge
	ActiveTasks       prometheus.Gauge
	StackDepth        prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Frames: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_frames_total",
			Help: "Frames simulated",
		}),
		EntitiesSpawned: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_entities_spawned_total",
			Help: "Entities created",
		}),
		EntitiesDestroyed: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_entities_destroyed_total",
			Help: "Entities swept from the store",
		}),
		Collisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "driftwood_collisions_total",
			Help: "Overlapping pairs dispatched to behaviors",
		}, []string{"axis"}), // bounded: "x", "y"
		TasksScheduled: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_tasks_scheduled_total",
			Help: "Schedule tasks created",
		}),
		TasksFinished: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_tasks_finished_total",
			Help: "Schedule tasks that completed or reached their limit",
		}),
		Transitions: f.NewCounter(prometheus.CounterOpts{
			Name: "driftwood_scene_transitions_total",
			Help: "Scene transitions applied",
		}),
		LiveEntities: f.NewGauge(prometheus.GaugeOpts{
			Name: "driftwood_live_entities",
			Help: "Entities currently in the store",
		}),
		ActiveTasks: f.NewGauge(prometheus.GaugeOpts{
			Name: "driftwood_active_tasks",
			Help: "Schedule tasks currently active",
		}),
		StackDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "driftwood_input_stack_depth",
			Help: "Frames on the input handler stack",
		}),
	}
}
