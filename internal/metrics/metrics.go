// Package metrics holds the encoder's prometheus counters. They live on a
// private registry so that embedding programs decide whether to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dnastore"

var registry = prometheus.NewRegistry()

var (
	LSHInserts = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "lsh", Name: "inserts_total",
		Help: "Sequences inserted into similarity indexes.",
	})
	LSHQueries = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "lsh", Name: "queries_total",
		Help: "Similarity queries served.",
	})
	CandidatesScored = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "permcoder", Name: "candidates_scored_total",
		Help: "Permutation candidates scored.",
	})
	PacketsPulled = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "fountain", Name: "packets_pulled_total",
		Help: "Fountain packets generated by encoders.",
	})
	PacketsRejected = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "fountain", Name: "packets_rejected_total",
		Help: "Fountain packets failing the per-packet rule.",
	})
	OrderingsTried = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "fountain", Name: "orderings_total",
		Help: "Packet orderings tried during strand assembly, by outcome.",
	}, []string{"outcome"})
	StrandsAssembled = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "fountain", Name: "strands_total",
		Help: "Strands assembled successfully.",
	})
	SegmentsEmitted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "segment", Name: "segments_total",
		Help: "Segments emitted, headers included.",
	})
)

// Outcome labels for OrderingsTried.
const (
	OutcomeFound        = "found"
	OutcomeNotDecodable = "not_decodable"
	OutcomeRuleRejected = "rule_rejected"
)

// Registry returns the registry holding every counter above.
func Registry() *prometheus.Registry { return registry }
