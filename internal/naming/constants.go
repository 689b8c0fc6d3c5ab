package naming

// PoolsVersion is written by Save.
const PoolsVersion = "1.0"

// Odds used by the naming policy, as 1-in-N chances.
const (
	BasicQualityOdds     = 4 // plain descriptor on trash/common items
	UncommonMagicOdds    = 3 // uncommon item named like a magical one
	PartOdds             = 2 // each of prefix and suffix on rare/epic names
	LegendaryCuratedOdds = 3 // curated legendary name instead of a composed one
)

// ArtifactArticle is prepended to artifact names that lack an article.
const ArtifactArticle = "The"

var articles = []string{"The", "A", "An"}

// fallbackArtifactTitles is used when the artifact pool is empty.
var fallbackArtifactTitles = []string{
	"The Worldbreaker", "The Eternal Flame", "The Void Walker",
	"The Star Forge", "The Time Render", "The Soul Keeper",
	"The Dream Weaver", "The Reality Shaper", "The Fate Binder",
}

// Error context messages for wrapped errors during configuration loading
const (
	ErrContextFailedToLoadNames   = "failed to load name pools"
	ErrContextFailedToDecodeNames = "failed to decode name pools"
)

// UnknownItemName names an item whose type carries no kind.
const UnknownItemName = "Unknown Item"
