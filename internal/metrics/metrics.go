package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation Metrics
var (
	ItemsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGenerated,
			Help: HelpTextItemsGenerated,
		},
		[]string{LabelRarity, LabelCategory},
	)

	AffixesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAffixesApplied,
			Help: HelpTextAffixesApplied,
		},
	)

	EmptyAffixPools = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEmptyAffixPools,
			Help: HelpTextEmptyAffixPools,
		},
		[]string{LabelCategory},
	)

	GenerationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGenerationErrors,
			Help: HelpTextGenerationErrors,
		},
		[]string{LabelReason},
	)
)

// Loot Metrics
var (
	LootResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootResolutions,
			Help: HelpTextLootResolutions,
		},
		[]string{LabelTable},
	)

	LootItemsDropped = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameLootItemsDropped,
			Help:    HelpTextLootItemsDropped,
			Buckets: LootItemsBuckets,
		},
	)

	TableFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTableFallbacks,
			Help: HelpTextTableFallbacks,
		},
		[]string{LabelFallback},
	)

	RecursionTruncated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecursionTruncate,
			Help: HelpTextRecursionTruncate,
		},
		[]string{LabelTable},
	)

	TableReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTableReloads,
			Help: HelpTextTableReloads,
		},
		[]string{LabelResult},
	)
)
