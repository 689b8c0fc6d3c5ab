package domain

import (
	"fmt"
	"strings"
)

// GenerationContext biases which item types are generated. It never affects
// rarity or scaling directly.
type GenerationContext int

const (
	ContextRandom GenerationContext = iota
	ContextCombat
	ContextTreasure
	ContextMerchant
)

var contextNames = [...]string{
	ContextRandom:   "random",
	ContextCombat:   "combat",
	ContextTreasure: "treasure",
	ContextMerchant: "merchant",
}

// AllContexts returns every generation context.
func AllContexts() []GenerationContext {
	return []GenerationContext{ContextRandom, ContextCombat, ContextTreasure, ContextMerchant}
}

func (c GenerationContext) String() string {
	if c < ContextRandom || c > ContextMerchant {
		return fmt.Sprintf("context(%d)", int(c))
	}
	return contextNames[c]
}

// ParseGenerationContext parses a context name such as "combat".
func ParseGenerationContext(s string) (GenerationContext, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range contextNames {
		if n == name {
			return GenerationContext(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidContext, s)
}

func (c GenerationContext) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *GenerationContext) UnmarshalText(text []byte) error {
	parsed, err := ParseGenerationContext(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
