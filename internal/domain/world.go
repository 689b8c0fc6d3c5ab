package domain

import "context"

// Position is a map cell where a generated item is materialized.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemHandle is the opaque reference returned by the world after creating an
// item entity.
type ItemHandle uint64

// ItemCreator is the external capability that turns a generated ItemSpec into
// a world entity. Generation never calls it; callers do, after generation.
type ItemCreator interface {
	CreateItem(ctx context.Context, spec ItemSpec, pos Position) (ItemHandle, error)
}
