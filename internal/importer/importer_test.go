package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/auth"
	"github.com/ksred/folio-api/internal/database"
	"github.com/ksred/folio-api/internal/types"
)

func setupFixtures(t *testing.T, db *gorm.DB) (userID, stockID uint) {
	t.Helper()

	user, err := auth.NewService(db, "").Register(auth.RegisterRequest{
		Username: "importuser",
		Password: "testpass123",
	})
	require.NoError(t, err)

	stock := &types.Stock{Name: "Stock 1", Price: decimal.RequireFromString("5.99")}
	require.NoError(t, db.Create(stock).Error)

	return user.ID, stock.ID
}

func TestImport_PlacesValidRows(t *testing.T) {
	db := database.SetupTestDB(t)
	userID, stockID := setupFixtures(t, db)

	csv := fmt.Sprintf(
		"user_id,stock_id,order_type,quantity\n%d,%d,buy,10\n%d,%d,sell,4\n",
		userID, stockID, userID, stockID)

	result, err := New(db).Import(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Placed)
	assert.Equal(t, 0, result.Skipped)

	var orders []types.Order
	require.NoError(t, db.Order("id ASC").Find(&orders).Error)
	require.Len(t, orders, 2)
	assert.Equal(t, types.OrderTypeBuy, orders[0].OrderType)
	assert.Equal(t, types.OrderTypeSell, orders[1].OrderType)
}

func TestImport_SkipsInvalidRows(t *testing.T) {
	db := database.SetupTestDB(t)
	userID, stockID := setupFixtures(t, db)

	rows := []string{
		"user_id,stock_id,order_type,quantity",
		fmt.Sprintf("%d,%d,buy,10", userID, stockID),
		fmt.Sprintf("999,%d,buy,5", stockID),          // unknown user
		fmt.Sprintf("%d,999,buy,5", userID),           // unknown stock
		fmt.Sprintf("%d,%d,sell,50", userID, stockID), // oversell
		fmt.Sprintf("%d,%d,hold,5", userID, stockID),  // bad order type
		fmt.Sprintf("%d,%d,buy,abc", userID, stockID), // bad quantity
	}

	result, err := New(db).Import(strings.NewReader(strings.Join(rows, "\n") + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Placed)
	assert.Equal(t, 5, result.Skipped)

	var count int64
	require.NoError(t, db.Model(&types.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestImport_MissingHeaderColumn(t *testing.T) {
	db := database.SetupTestDB(t)

	_, err := New(db).Import(strings.NewReader("user_id,stock_id,quantity\n1,1,5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_type")
}

func TestImportFile_MissingFile(t *testing.T) {
	db := database.SetupTestDB(t)

	_, err := New(db).ImportFile("does-not-exist.csv")
	assert.Error(t, err)
}
