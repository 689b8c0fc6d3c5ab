package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Load-time errors
	ErrMsgConfig          = "invalid generation config"
	ErrMsgUnknownItemType = "unknown item type"

	// Resolution errors
	ErrMsgUnknownTable = "unknown loot table"
	ErrMsgTableCycle   = "loot table recursion limit exceeded"

	// Generation errors
	ErrMsgInvalidDepth    = "depth must be non-negative"
	ErrMsgEmptyAffixPool  = "no affixes registered for item type"
	ErrMsgInvalidRarity   = "invalid rarity"
	ErrMsgInvalidCategory = "invalid item category"
	ErrMsgInvalidContext  = "invalid generation context"
)

// Generation errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
//
// ErrConfig is fatal at load time. ErrUnknownTable, ErrTableCycle and
// ErrEmptyAffixPool are recoverable: generation degrades and reports them as
// warnings instead of failing. ErrInvalidDepth is rejected before any draw.
var (
	ErrConfig          = errors.New(ErrMsgConfig)
	ErrUnknownItemType = errors.New(ErrMsgUnknownItemType)

	ErrUnknownTable = errors.New(ErrMsgUnknownTable)
	ErrTableCycle   = errors.New(ErrMsgTableCycle)

	ErrInvalidDepth   = errors.New(ErrMsgInvalidDepth)
	ErrEmptyAffixPool = errors.New(ErrMsgEmptyAffixPool)

	ErrInvalidRarity   = errors.New(ErrMsgInvalidRarity)
	ErrInvalidCategory = errors.New(ErrMsgInvalidCategory)
	ErrInvalidContext  = errors.New(ErrMsgInvalidContext)
)
