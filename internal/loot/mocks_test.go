package loot

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/delvegen/internal/domain"
	"github.com/osse101/delvegen/internal/generator"
	"github.com/osse101/delvegen/internal/rng"
)

// MockItemCreator is a mock implementation of domain.ItemCreator
type MockItemCreator struct {
	mock.Mock
}

func (m *MockItemCreator) CreateItem(ctx context.Context, spec domain.ItemSpec, pos domain.Position) (domain.ItemHandle, error) {
	args := m.Called(ctx, spec, pos)
	return args.Get(0).(domain.ItemHandle), args.Error(1)
}

// MockItemGenerator is a mock implementation of generator.ItemGenerator
type MockItemGenerator struct {
	mock.Mock
}

func (m *MockItemGenerator) GenerateItem(ctx context.Context, req generator.Request, src rng.Source) (domain.ItemSpec, error) {
	out, err := m.Generate(ctx, req, src)
	return out.Spec, err
}

func (m *MockItemGenerator) Generate(ctx context.Context, req generator.Request, src rng.Source) (generator.Outcome, error) {
	args := m.Called(ctx, req, src)
	return args.Get(0).(generator.Outcome), args.Error(1)
}
