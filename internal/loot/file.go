package loot

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/utils"
	"github.com/osse101/delvegen/internal/validation"
)

// LoadFile reads a loot table file (JSON or YAML). The document is checked
// against the bundled schema when sv is non-nil, then decoded and validated.
func LoadFile(path string, sv validation.SchemaValidator) (File, error) {
	data, err := utils.ReadDataFile(path)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToReadLootFile, err)
	}
	return ParseFile(data, sv)
}

// ParseFile decodes and validates a loot table file from JSON bytes.
func ParseFile(data []byte, sv validation.SchemaValidator) (File, error) {
	if sv != nil {
		if err := sv.ValidateBytes(data, validation.SchemaLootTables); err != nil {
			return File{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
		}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("%w: %s: %v", domain.ErrConfig, ErrContextFailedToParseLootFile, err)
	}
	if err := validation.ValidateStruct(f); err != nil {
		return File{}, fmt.Errorf("%w: %v", domain.ErrConfig, err)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// SaveFile writes f as indented JSON.
func SaveFile(path string, f File) error {
	return utils.SaveJSON(path, f)
}
