package stocks

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksred/folio-api/internal/database"
	"github.com/ksred/folio-api/internal/types"
)

func TestCreateStock(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	stock, err := service.CreateStock(StockRequest{
		Name:  "AAPL",
		Price: decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)
	assert.NotZero(t, stock.ID)

	fetched, err := service.GetStock(stock.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", fetched.Name)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("150.00")))
}

func TestCreateStock_Validation(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	tests := []struct {
		name string
		req  StockRequest
	}{
		{"empty name", StockRequest{Name: "", Price: decimal.New(1, 0)}},
		{"negative price", StockRequest{Name: "BAD", Price: decimal.RequireFromString("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateStock(tt.req)
			var validationErr *types.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdateStock_ChangesSubsequentValuations(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	stock, err := service.CreateStock(StockRequest{
		Name:  "GOOG",
		Price: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	updated, err := service.UpdateStock(stock.ID, StockRequest{
		Name:  "GOOG",
		Price: decimal.RequireFromString("120.50"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("120.50")))

	fetched, err := service.GetStock(stock.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("120.50")))
}

func TestUpdateStock_UnknownStock(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	_, err := service.UpdateStock(999, StockRequest{
		Name:  "GHOST",
		Price: decimal.New(1, 0),
	})
	assert.ErrorIs(t, err, types.ErrStockNotFound)
}

func TestListStocks(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	_, err := service.CreateStock(StockRequest{Name: "A", Price: decimal.New(1, 0)})
	require.NoError(t, err)
	_, err = service.CreateStock(StockRequest{Name: "B", Price: decimal.New(2, 0)})
	require.NoError(t, err)

	stocks, err := service.ListStocks()
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "A", stocks[0].Name)
	assert.Equal(t, "B", stocks[1].Name)
}

func TestDeleteStock_CascadesOrders(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	stock, err := service.CreateStock(StockRequest{
		Name:  "DOOMED",
		Price: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)
	keep, err := service.CreateStock(StockRequest{
		Name:  "KEPT",
		Price: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	orders := []types.Order{
		{UserID: 1, StockID: stock.ID, OrderType: types.OrderTypeBuy, Quantity: 5},
		{UserID: 2, StockID: stock.ID, OrderType: types.OrderTypeBuy, Quantity: 3},
		{UserID: 1, StockID: keep.ID, OrderType: types.OrderTypeBuy, Quantity: 1},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	require.NoError(t, service.DeleteStock(stock.ID))

	_, err = service.GetStock(stock.ID)
	assert.ErrorIs(t, err, types.ErrStockNotFound)

	var remaining []types.Order
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1, "only the other stock's order should survive")
	assert.Equal(t, keep.ID, remaining[0].StockID)
}

func TestDeleteStock_UnknownStock(t *testing.T) {
	db := database.SetupTestDB(t)
	service := NewService(db)

	err := service.DeleteStock(999)
	assert.ErrorIs(t, err, types.ErrStockNotFound)
}
