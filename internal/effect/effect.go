// Package effect describes consumable effects attached to generated items.
// Built-in kinds form a closed set; anything else is a Custom effect resolved
// through handlers registered by id.
package effect

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownEffect is returned when a kind or custom id has no handler.
var ErrUnknownEffect = errors.New("unknown effect")

// Kind is the closed set of effect variants.
type Kind string

const (
	KindHeal        Kind = "heal"
	KindRestoreMana Kind = "restore_mana"
	KindBuff        Kind = "buff"
	KindTeleport    Kind = "teleport"
	KindIdentify    Kind = "identify"
	KindCustom      Kind = "custom"
)

// Effect is a tagged variant: CustomID and Params are only meaningful when
// Kind is KindCustom.
type Effect struct {
	Kind      Kind              `json:"kind" yaml:"kind" validate:"required,oneof=heal restore_mana buff teleport identify custom"`
	Magnitude int               `json:"magnitude" yaml:"magnitude" validate:"gte=0"`
	CustomID  string            `json:"custom_id,omitempty" yaml:"custom_id" validate:"required_if=Kind custom"`
	Params    map[string]string `json:"params,omitempty" yaml:"params"`
}

// Scaled returns a copy whose magnitude is replaced, leaving e untouched.
func (e Effect) Scaled(magnitude int) Effect {
	out := e
	out.Magnitude = magnitude
	if e.Params != nil {
		out.Params = maps.Clone(e.Params)
	}
	return out
}

// Handler describes a custom effect from its parameters.
type Handler func(e Effect) (string, error)

// Registry is the capability table for custom effects.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a custom effect id to its handler, replacing any previous one.
func (r *Registry) Register(id string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = h
}

// IDs returns the registered custom ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.handlers))
}

// Describe renders a short player-facing description of e.
func (r *Registry) Describe(e Effect) (string, error) {
	switch e.Kind {
	case KindHeal:
		return fmt.Sprintf("Restores %d health", e.Magnitude), nil
	case KindRestoreMana:
		return fmt.Sprintf("Restores %d mana", e.Magnitude), nil
	case KindBuff:
		stat := e.Params["stat"]
		if stat == "" {
			stat = "all attributes"
		}
		return fmt.Sprintf("Raises %s by %d", stat, e.Magnitude), nil
	case KindTeleport:
		return "Teleports the user to a random location", nil
	case KindIdentify:
		return "Reveals the properties of an unknown item", nil
	case KindCustom:
		r.mu.RLock()
		h, ok := r.handlers[e.CustomID]
		r.mu.RUnlock()
		if !ok {
			return "", fmt.Errorf("%w: custom id %q", ErrUnknownEffect, e.CustomID)
		}
		return h(e)
	default:
		return "", fmt.Errorf("%w: kind %q", ErrUnknownEffect, e.Kind)
	}
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindHeal, KindRestoreMana, KindBuff, KindTeleport, KindIdentify, KindCustom:
		return k, nil
	}
	return "", fmt.Errorf("%w: kind %q", ErrUnknownEffect, s)
}
