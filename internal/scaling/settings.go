package scaling

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/utils"
	"github.com/osse101/delvegen/internal/validation"
)

// Settings bundles every generation knob that can be tuned from a file.
type Settings struct {
	Version        string         `json:"version" validate:"required"`
	RarityWeights  RarityWeights  `json:"rarity_weights"`
	DepthScaling   DepthScaling   `json:"depth_scaling"`
	RarityProfiles RarityProfiles `json:"rarity_profiles" validate:"dive"`
}

// DefaultSettings returns the compiled-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Version:        SettingsVersion,
		RarityWeights:  DefaultRarityWeights(),
		DepthScaling:   DefaultDepthScaling(),
		RarityProfiles: DefaultRarityProfiles(),
	}
}

// Validate checks the whole settings bundle.
func (s Settings) Validate() error {
	if err := validation.ValidateStruct(s); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	if err := s.RarityWeights.Validate(); err != nil {
		return err
	}
	return s.RarityProfiles.Validate()
}

// LoadSettings reads a generation settings file (JSON or YAML), validates it
// against the bundled schema and overlays it on the defaults: sections left
// out of the file keep their stock values, rarities left out of a present
// section keep theirs too.
func LoadSettings(path string, sv validation.SchemaValidator) (Settings, error) {
	data, err := utils.ReadDataFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToReadSettings, err)
	}
	return ParseSettings(data, sv)
}

// ParseSettings decodes settings from JSON bytes; see LoadSettings.
func ParseSettings(data []byte, sv validation.SchemaValidator) (Settings, error) {
	if sv != nil {
		if err := sv.ValidateBytes(data, validation.SchemaGeneration); err != nil {
			return Settings{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
		}
	}

	var raw struct {
		Version        string         `json:"version"`
		RarityWeights  RarityWeights  `json:"rarity_weights"`
		DepthScaling   *DepthScaling  `json:"depth_scaling"`
		RarityProfiles RarityProfiles `json:"rarity_profiles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToDecodeSettings, err)
	}

	s := DefaultSettings()
	s.Version = raw.Version
	for r, w := range raw.RarityWeights {
		s.RarityWeights[r] = w
	}
	if raw.DepthScaling != nil {
		s.DepthScaling = *raw.DepthScaling
	}
	for r, p := range raw.RarityProfiles {
		s.RarityProfiles[r] = p
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes the settings as JSON.
func (s Settings) Save(path string) error {
	if s.Version == "" {
		s.Version = SettingsVersion
	}
	return utils.SaveJSON(path, s)
}
