package storytime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sceneLabel   = "scene"
	errTypeLabel = "err_type"
)

var (
	sceneActorCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "storytime_scene_actors",
		Help: "The number of actors registered in a scene.",
	}, []string{sceneLabel})

	sceneReindexTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storytime_actor_reindex_total",
		Help: "The total number of quadtree re-indexes caused by actor bounds changes.",
	}, []string{sceneLabel})

	sceneRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storytime_actor_rejected_total",
		Help: "The total number of actors refused by AddActor.",
	}, []string{sceneLabel, errTypeLabel})

	sceneVisibleActors = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storytime_render_visible_actors",
		Help:    "The number of actors drawn per Render call.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{sceneLabel})
)

func sceneLabels(s *Scene) prometheus.Labels {
	return prometheus.Labels{sceneLabel: s.id.String()}
}

func instrumentActorCount(s *Scene) {
	sceneActorCount.
		With(sceneLabels(s)).
		Set(float64(len(s.actors)))
}

func instrumentReindex(s *Scene) {
	sceneReindexTotal.
		With(sceneLabels(s)).
		Inc()
}

func instrumentRejectActor(s *Scene, errType string) {
	sceneRejectedTotal.
		With(prometheus.Labels{sceneLabel: s.id.String(), errTypeLabel: errType}).
		Inc()
}

func instrumentVisible(s *Scene, n int) {
	sceneVisibleActors.
		With(sceneLabels(s)).
		Observe(float64(n))
}

// forgetSceneMetrics drops every series labelled with s so disposed scenes do
// not accumulate in the registry.
func forgetSceneMetrics(s *Scene) {
	labels := sceneLabels(s)
	sceneActorCount.Delete(labels)
	sceneReindexTotal.Delete(labels)
	sceneVisibleActors.Delete(labels)
	sceneRejectedTotal.DeletePartialMatch(labels)
}
