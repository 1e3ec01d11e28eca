package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
	"go.uber.org/zap"
)

func newTestFabrics() services.FabricService {
	return services.NewFabricService(newTestCatalog(), zap.NewNop())
}

func TestFabric_SeedLibrary(t *testing.T) {
	ctx := context.Background()
	f := newTestFabrics()

	assert.Len(t, f.List(ctx), 7)
	assert.Len(t, f.ByCategory(ctx, models.FabricPrimary), 3)
	assert.Len(t, f.ByCategory(ctx, models.FabricSecondary), 2)
	assert.Len(t, f.ByCategory(ctx, models.FabricTertiary), 2)
}

func TestFabric_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newTestFabrics()

	added, err := f.Add(ctx, models.FabricOptionRequest{
		Name:          "  Harris Tweed ",
		Category:      models.FabricPrimary,
		PriceModifier: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Regexp(t, `^fabric_\d+$`, added.ID)
	assert.Equal(t, "Harris Tweed", added.Name)
	assert.Len(t, f.List(ctx), 8)

	updated, err := f.Update(ctx, added.ID, models.FabricOptionRequest{
		Name:          "Harris Tweed",
		Category:      models.FabricSecondary,
		PriceModifier: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FabricSecondary, updated.Category)
	assert.Len(t, f.ByCategory(ctx, models.FabricSecondary), 3)

	require.NoError(t, f.Delete(ctx, added.ID))
	assert.Len(t, f.List(ctx), 7)
	assert.True(t, apperrors.IsKind(f.Delete(ctx, added.ID), apperrors.KindNotFound))
}

func TestFabric_Validation(t *testing.T) {
	ctx := context.Background()
	f := newTestFabrics()

	_, err := f.Add(ctx, models.FabricOptionRequest{Category: models.FabricPrimary})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.Add(ctx, models.FabricOptionRequest{Name: "Denim", Category: "quaternary"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.Update(ctx, "fabric_99", models.FabricOptionRequest{Name: "Denim", Category: models.FabricPrimary})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestFabric_Price(t *testing.T) {
	ctx := context.Background()
	f := newTestFabrics()

	tests := []struct {
		name      string
		selection map[models.FabricCategory]string
		want      string
	}{
		{"no selection", nil, "149.99"},
		{"cashmere", map[models.FabricCategory]string{models.FabricPrimary: "fabric_2"}, "187.49"},
		{"linen discount", map[models.FabricCategory]string{models.FabricPrimary: "fabric_3"}, "134.99"},
		{"modifiers add against base", map[models.FabricCategory]string{
			models.FabricPrimary:   "fabric_2",
			models.FabricSecondary: "fabric_4",
		}, "209.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Price(ctx, "2", tt.selection)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFabric_PriceRejectsMismatchedSelection(t *testing.T) {
	ctx := context.Background()
	f := newTestFabrics()

	_, err := f.Price(ctx, "2", map[models.FabricCategory]string{models.FabricSecondary: "fabric_1"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.Price(ctx, "99", nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
