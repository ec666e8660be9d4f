package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"concession-inventory-api/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore implements Store using MySQL. Currency columns are
// DECIMAL(12,2); values cross the wire as strings so exactness is
// preserved end to end.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a pooled connection to MySQL.
// dsn format: "user:password@tcp(host:port)/dbname?parseTime=true"
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[MySQLStore] Initialized")
	return &MySQLStore{db: db}, nil
}

func createMySQLTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			category VARCHAR(64) NOT NULL,
			subcategory VARCHAR(64) NOT NULL DEFAULT '',
			sku VARCHAR(64) NOT NULL,
			price DECIMAL(12,2) NOT NULL DEFAULT 0,
			stock_quantity INT NOT NULL DEFAULT 0,
			reorder_level INT NOT NULL DEFAULT 5,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			square_id VARCHAR(64) NOT NULL DEFAULT '',
			UNIQUE KEY uniq_items_sku (sku),
			KEY idx_items_category (category)
		)`,
		`CREATE TABLE IF NOT EXISTS purchase_history (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			item_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
			purchase_date DATETIME NOT NULL,
			square_order_id VARCHAR(64) NOT NULL DEFAULT '',
			KEY idx_purchases_date (purchase_date),
			KEY idx_purchases_item (item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS api_sync_logs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			sync_date DATETIME NOT NULL,
			status VARCHAR(16) NOT NULL,
			error_message TEXT,
			KEY idx_sync_logs_date (sync_date)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListItems returns all items ordered by id.
func (s *MySQLStore) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return collectItems(rows)
}

// ListItemsByCategory returns items whose category matches, case-insensitively.
func (s *MySQLStore) ListItemsByCategory(ctx context.Context, category string) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE LOWER(category) = ? ORDER BY id`,
		strings.ToLower(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}
	return collectItems(rows)
}

// GetItem returns the item with the given id, or ErrNotFound.
func (s *MySQLStore) GetItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// CreateItem inserts a new item, enforcing sku and squareId uniqueness.
func (s *MySQLStore) CreateItem(ctx context.Context, insert model.InsertInventoryItem) (*model.InventoryItem, error) {
	if err := s.checkDuplicates(ctx, 0, insert.SKU, insert.SquareID); err != nil {
		return nil, err
	}

	reorderLevel := model.DefaultReorderLevel
	if insert.ReorderLevel != nil {
		reorderLevel = *insert.ReorderLevel
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (name, description, category, subcategory, sku, price, stock_quantity, reorder_level, image_url, square_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		insert.Name, insert.Description, insert.Category, insert.Subcategory,
		insert.SKU, insert.Price.String(), insert.StockQuantity, reorderLevel,
		insert.ImageURL, insert.SquareID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

// UpdateItem applies a partial update and returns the updated item.
func (s *MySQLStore) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.InventoryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	sku := item.SKU
	if update.SKU != nil {
		sku = *update.SKU
	}
	squareID := item.SquareID
	if update.SquareID != nil {
		squareID = *update.SquareID
	}
	if err := s.checkDuplicates(ctx, id, sku, squareID); err != nil {
		return nil, err
	}

	applyItemUpdate(item, update)
	item.SKU = sku
	item.SquareID = squareID

	_, err = s.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET name = ?, description = ?, category = ?, subcategory = ?, sku = ?,
		    price = ?, stock_quantity = ?, reorder_level = ?, image_url = ?, square_id = ?
		WHERE id = ?`,
		item.Name, item.Description, item.Category, item.Subcategory, item.SKU,
		item.Price.String(), item.StockQuantity, item.ReorderLevel,
		item.ImageURL, item.SquareID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item, or returns ErrNotFound.
func (s *MySQLStore) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) checkDuplicates(ctx context.Context, excludeID int64, sku, squareID string) error {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE sku = ? AND id != ?`,
		sku, excludeID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check sku uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSKU
	}

	if squareID != "" {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM inventory_items WHERE square_id = ? AND id != ?`,
			squareID, excludeID).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check square_id uniqueness: %w", err)
		}
		if count > 0 {
			return ErrDuplicateSquareID
		}
	}
	return nil
}

// ListPurchases returns purchases, newest first. limit <= 0 means all.
func (s *MySQLStore) ListPurchases(ctx context.Context, limit int) ([]model.PurchaseHistory, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_history ORDER BY purchase_date DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return collectPurchases(rows)
}

// ListPurchasesByDateRange returns purchases with start <= purchaseDate <= end.
func (s *MySQLStore) ListPurchasesByDateRange(ctx context.Context, start, end time.Time) ([]model.PurchaseHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchase_history
		 WHERE purchase_date >= ? AND purchase_date <= ?
		 ORDER BY purchase_date DESC, id DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by date range: %w", err)
	}
	return collectPurchases(rows)
}

// ListPurchasesByItem returns purchases referencing the given item id.
func (s *MySQLStore) ListPurchasesByItem(ctx context.Context, itemID int64) ([]model.PurchaseHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchase_history
		 WHERE item_id = ? ORDER BY purchase_date DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by item: %w", err)
	}
	return collectPurchases(rows)
}

// CreatePurchase appends a purchase record.
func (s *MySQLStore) CreatePurchase(ctx context.Context, insert model.InsertPurchaseHistory) (*model.PurchaseHistory, error) {
	purchaseDate := insert.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO purchase_history (item_id, quantity, total_price, purchase_date, square_order_id)
		VALUES (?, ?, ?, ?, ?)`,
		insert.ItemID, insert.Quantity, insert.TotalPrice.String(), purchaseDate, insert.SquareOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.PurchaseHistory{
		ID:            id,
		ItemID:        insert.ItemID,
		Quantity:      insert.Quantity,
		TotalPrice:    insert.TotalPrice,
		PurchaseDate:  purchaseDate,
		SquareOrderID: insert.SquareOrderID,
	}, nil
}

// LatestSyncLog returns the entry with the maximum syncDate, or ErrNotFound.
func (s *MySQLStore) LatestSyncLog(ctx context.Context) (*model.SyncLog, error) {
	var entry model.SyncLog
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sync_date, status, error_message FROM api_sync_logs
		ORDER BY sync_date DESC, id DESC LIMIT 1`).
		Scan(&entry.ID, &entry.SyncDate, &entry.Status, &entry.ErrorMessage)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest sync log: %w", err)
	}
	return &entry, nil
}

// AppendSyncLog records a sync attempt stamped with the current time.
func (s *MySQLStore) AppendSyncLog(ctx context.Context, status, errorMessage string) (*model.SyncLog, error) {
	syncDate := time.Now()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO api_sync_logs (sync_date, status, error_message) VALUES (?, ?, ?)`,
		syncDate, status, errorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sync log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.SyncLog{ID: id, SyncDate: syncDate, Status: status, ErrorMessage: errorMessage}, nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// Ensure MySQLStore implements Store
var _ Store = (*MySQLStore)(nil)
