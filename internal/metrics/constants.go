package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Generation metric names
const (
	MetricNameItemsGenerated   = "delvegen_items_generated_total"
	MetricNameAffixesApplied   = "delvegen_affixes_applied_total"
	MetricNameEmptyAffixPools  = "delvegen_empty_affix_pools_total"
	MetricNameGenerationErrors = "delvegen_generation_errors_total"
)

// Loot metric names
const (
	MetricNameLootResolutions   = "delvegen_loot_resolutions_total"
	MetricNameLootItemsDropped  = "delvegen_loot_items_dropped"
	MetricNameTableFallbacks    = "delvegen_loot_table_fallbacks_total"
	MetricNameRecursionTruncate = "delvegen_loot_recursion_truncated_total"
	MetricNameTableReloads      = "delvegen_loot_table_reloads_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// Generation metric help text
const (
	HelpTextItemsGenerated   = "Total number of items generated, by rarity"
	HelpTextAffixesApplied   = "Total number of stat affixes applied to generated items"
	HelpTextEmptyAffixPools  = "Total number of affix rolls skipped because the item type has no affix pool"
	HelpTextGenerationErrors = "Total number of failed item generations, by reason"
)

// Loot metric help text
const (
	HelpTextLootResolutions   = "Total number of loot table resolutions, by table"
	HelpTextLootItemsDropped  = "Number of item stacks produced per loot resolution"
	HelpTextTableFallbacks    = "Total number of unknown table lookups that fell back to the default table"
	HelpTextRecursionTruncate = "Total number of loot branches truncated at the recursion limit"
	HelpTextTableReloads      = "Total number of loot table reloads, by result"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelRarity   = "rarity"
	LabelCategory = "category"
	LabelTable    = "table"
	LabelFallback = "fallback"
	LabelReason   = "reason"
	LabelResult   = "result"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// LootItemsBuckets are the histogram buckets for stacks per resolution.
var LootItemsBuckets = []float64{0, 1, 2, 3, 4, 6, 8, 12, 16}
