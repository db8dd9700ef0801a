package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/auth"
	"github.com/ksred/folio-api/internal/trading"
	"github.com/ksred/folio-api/internal/types"
)

// Importer places orders in bulk from a CSV file. Every row goes through the
// same validated creation path as the API, so oversell rows and rows
// referencing unknown users or stocks are skipped, not partially applied.
type Importer struct {
	users   *auth.Service
	trading *trading.Service
}

// New creates an importer backed by the given database connection
func New(gormDB *gorm.DB) *Importer {
	return &Importer{
		users:   auth.NewService(gormDB, ""),
		trading: trading.NewService(gormDB),
	}
}

// Result summarizes an import run
type Result struct {
	Placed  int `json:"placed"`
	Skipped int `json:"skipped"`
}

// ImportFile reads and places orders from the CSV file at path
// Expected header: user_id,stock_id,order_type,quantity
func (imp *Importer) ImportFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	return imp.Import(f)
}

// Import reads and places orders from CSV data
func (imp *Importer) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{"user_id", "stock_id", "order_type", "quantity"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", required)
		}
	}

	result := &Result{}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}

		if err := imp.placeRow(record, columns); err != nil {
			log.Warn().
				Int("line", line).
				Err(err).
				Msg("skipping row")
			result.Skipped++
			continue
		}
		result.Placed++
	}

	log.Info().
		Int("placed", result.Placed).
		Int("skipped", result.Skipped).
		Msg("bulk order import finished")

	return result, nil
}

func (imp *Importer) placeRow(record []string, columns map[string]int) error {
	userID, err := strconv.ParseUint(record[columns["user_id"]], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid user_id: %w", err)
	}
	stockID, err := strconv.ParseUint(record[columns["stock_id"]], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid stock_id: %w", err)
	}
	quantity, err := strconv.ParseInt(record[columns["quantity"]], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}

	user, err := imp.users.GetUser(uint(userID))
	if err != nil {
		return err
	}
	if user == nil {
		return types.ErrUserNotFound
	}

	_, err = imp.trading.CreateOrder(uint(userID), trading.CreateOrderRequest{
		StockID:   uint(stockID),
		OrderType: record[columns["order_type"]],
		Quantity:  quantity,
	})
	return err
}
