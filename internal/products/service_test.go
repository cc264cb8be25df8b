package product

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/jcastellanos/pos-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(NewRepository(newTestDB(t)))
	require.NoError(t, err)
	return svc
}

func strPtr(s string) *string { return &s }

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:          "French Press",
		Description:   strPtr("8-cup glass press"),
		Price:         mustDecimal(t, "24.99"),
		StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "French Press", created.Name)
	assert.True(t, created.Price.Equal(mustDecimal(t, "24.99")))
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	byName, err := svc.GetByName(ctx, "FRENCH press")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "  ", Price: mustDecimal(t, "1.00")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, ProductInput{Name: "Negative", Price: mustDecimal(t, "-1.00")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, ProductInput{Name: "Bad stock", Price: mustDecimal(t, "1.00"), StockQuantity: -1})
	requireCode(t, err, pkgerrors.CodeValidation)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServiceCreateDuplicateName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Name: "Moka Pot", Price: mustDecimal(t, "19.00"), StockQuantity: 3})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ProductInput{Name: "moka pot", Price: mustDecimal(t, "21.00"), StockQuantity: 1})
	requireCode(t, err, pkgerrors.CodeConflict)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), 9999)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Scale", Price: mustDecimal(t, "15.00"), StockQuantity: 4})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ProductInput{
		Name:          "Precision Scale",
		Description:   strPtr("0.1g resolution"),
		Price:         mustDecimal(t, "18.50"),
		StockQuantity: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Precision Scale", updated.Name)
	assert.True(t, updated.Price.Equal(mustDecimal(t, "18.50")))
	assert.Equal(t, 6, updated.StockQuantity)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
}

func TestServiceUpdateRenameRules(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, ProductInput{Name: "Dripper", Price: mustDecimal(t, "9.00"), StockQuantity: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ProductInput{Name: "Server", Price: mustDecimal(t, "14.00"), StockQuantity: 2})
	require.NoError(t, err)

	// renaming onto another product's name is a conflict
	_, err = svc.Update(ctx, first.ID, ProductInput{Name: "SERVER", Price: mustDecimal(t, "9.00"), StockQuantity: 2})
	requireCode(t, err, pkgerrors.CodeConflict)

	// a case-only rename of the product's own name succeeds
	updated, err := svc.Update(ctx, first.ID, ProductInput{Name: "DRIPPER", Price: mustDecimal(t, "9.00"), StockQuantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "DRIPPER", updated.Name)
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), 4242, ProductInput{Name: "Ghost", Price: mustDecimal(t, "1.00")})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{Name: "Cleaner", Price: mustDecimal(t, "5.00"), StockQuantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	exists, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestServiceUpdateStockQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:          "Filter Pack",
		Price:         mustDecimal(t, "4.50"),
		StockQuantity: 7,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStockQuantity(ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
	assert.Equal(t, "Filter Pack", updated.Name)
	assert.True(t, updated.Price.Equal(mustDecimal(t, "4.50")))

	_, err = svc.UpdateStockQuantity(ctx, created.ID, -3)
	requireCode(t, err, pkgerrors.CodeValidation)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	_, err = svc.UpdateStockQuantity(ctx, created.ID+500, 5)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceQueries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mk := func(name, price string, stock int) {
		t.Helper()
		_, err := svc.Create(ctx, ProductInput{Name: name, Price: mustDecimal(t, price), StockQuantity: stock})
		require.NoError(t, err)
	}
	mk("Light Roast", "14.00", 0)
	mk("Medium Roast", "15.50", 9)
	mk("Dark Roast", "17.00", 25)

	found, err := svc.Search(ctx, "roast")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	ranged, err := svc.GetByPriceRange(ctx, mustDecimal(t, "14.00"), mustDecimal(t, "15.50"))
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	// inverted bounds yield an empty result rather than an error
	inverted, err := svc.GetByPriceRange(ctx, mustDecimal(t, "20.00"), mustDecimal(t, "10.00"))
	require.NoError(t, err)
	assert.Empty(t, inverted)

	above, err := svc.GetAbovePrice(ctx, mustDecimal(t, "15.50"))
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, "Dark Roast", above[0].Name)

	low, err := svc.GetLowStock(ctx, DefaultLowStockThreshold)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	available, err := svc.GetAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
