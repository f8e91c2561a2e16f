package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scoresComputed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "verdant",
		Name:      "scores_computed_total",
		Help:      "Supplier scores derived on read.",
	})

	weightSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verdant",
		Name:      "weight_saves_total",
		Help:      "Weight configuration saves by outcome.",
	}, []string{"outcome"})

	simulations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verdant",
		Name:      "simulations_total",
		Help:      "Simulation requests by outcome.",
	}, []string{"outcome"})

	// WeightsGeneration counts weights.updated events seen since start.
	WeightsGeneration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "verdant",
		Name:      "weights_generation",
		Help:      "Weight configuration updates observed on the event bus.",
	})
)
