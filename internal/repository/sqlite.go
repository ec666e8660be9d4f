package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"concession-inventory-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteStore implements Store using SQLite. Currency columns are TEXT
// holding exact decimal strings so totals never pass through floats.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// WAL mode for concurrent reads while the single writer works.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteStore] Initialized with database: %s", dbPath)
	return &SQLiteStore{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS inventory_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		subcategory TEXT NOT NULL DEFAULT '',
		sku TEXT NOT NULL UNIQUE,
		price TEXT NOT NULL DEFAULT '0',
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		reorder_level INTEGER NOT NULL DEFAULT 5,
		image_url TEXT NOT NULL DEFAULT '',
		square_id TEXT NOT NULL DEFAULT ''
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_items_square_id
		ON inventory_items(square_id) WHERE square_id != '';
	CREATE INDEX IF NOT EXISTS idx_items_category ON inventory_items(category);

	CREATE TABLE IF NOT EXISTS purchase_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		total_price TEXT NOT NULL DEFAULT '0',
		purchase_date DATETIME NOT NULL,
		square_order_id TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchase_history(purchase_date);
	CREATE INDEX IF NOT EXISTS idx_purchases_item ON purchase_history(item_id);

	CREATE TABLE IF NOT EXISTS api_sync_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sync_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_sync_logs_date ON api_sync_logs(sync_date);
	`
	_, err := db.Exec(query)
	return err
}

const itemColumns = `id, name, description, category, subcategory, sku, price, stock_quantity, reorder_level, image_url, square_id`

func scanItem(row interface{ Scan(...any) error }) (*model.InventoryItem, error) {
	var item model.InventoryItem
	var price string
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category,
		&item.Subcategory, &item.SKU, &price, &item.StockQuantity,
		&item.ReorderLevel, &item.ImageURL, &item.SquareID)
	if err != nil {
		return nil, err
	}
	item.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]model.InventoryItem, error) {
	defer rows.Close()

	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListItems returns all items ordered by id.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return collectItems(rows)
}

// ListItemsByCategory returns items whose category matches, case-insensitively.
func (s *SQLiteStore) ListItemsByCategory(ctx context.Context, category string) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE LOWER(category) = ? ORDER BY id`,
		strings.ToLower(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}
	return collectItems(rows)
}

// GetItem returns the item with the given id, or ErrNotFound.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
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
func (s *SQLiteStore) CreateItem(ctx context.Context, insert model.InsertInventoryItem) (*model.InventoryItem, error) {
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
func (s *SQLiteStore) UpdateItem(ctx context.Context, id int64, update model.ItemUpdate) (*model.InventoryItem, error) {
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
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
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

// checkDuplicates enforces sku/squareId uniqueness, ignoring the row
// being updated (excludeID = 0 for inserts).
func (s *SQLiteStore) checkDuplicates(ctx context.Context, excludeID int64, sku, squareID string) error {
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

const purchaseColumns = `id, item_id, quantity, total_price, purchase_date, square_order_id`

func collectPurchases(rows *sql.Rows) ([]model.PurchaseHistory, error) {
	defer rows.Close()

	purchases := make([]model.PurchaseHistory, 0)
	for rows.Next() {
		var p model.PurchaseHistory
		var total string
		if err := rows.Scan(&p.ID, &p.ItemID, &p.Quantity, &total, &p.PurchaseDate, &p.SquareOrderID); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("invalid stored total_price %q: %w", total, err)
		}
		p.TotalPrice = d
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// ListPurchases returns purchases, newest first. limit <= 0 means all.
func (s *SQLiteStore) ListPurchases(ctx context.Context, limit int) ([]model.PurchaseHistory, error) {
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
func (s *SQLiteStore) ListPurchasesByDateRange(ctx context.Context, start, end time.Time) ([]model.PurchaseHistory, error) {
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
func (s *SQLiteStore) ListPurchasesByItem(ctx context.Context, itemID int64) ([]model.PurchaseHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+purchaseColumns+` FROM purchase_history
		 WHERE item_id = ? ORDER BY purchase_date DESC, id DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases by item: %w", err)
	}
	return collectPurchases(rows)
}

// CreatePurchase appends a purchase record.
func (s *SQLiteStore) CreatePurchase(ctx context.Context, insert model.InsertPurchaseHistory) (*model.PurchaseHistory, error) {
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
func (s *SQLiteStore) LatestSyncLog(ctx context.Context) (*model.SyncLog, error) {
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
func (s *SQLiteStore) AppendSyncLog(ctx context.Context, status, errorMessage string) (*model.SyncLog, error) {
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// applyItemUpdate copies the non-nil fields of update onto item,
// excluding sku and squareId which the callers handle with uniqueness
// checks.
func applyItemUpdate(item *model.InventoryItem, update model.ItemUpdate) {
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Subcategory != nil {
		item.Subcategory = *update.Subcategory
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.StockQuantity != nil {
		item.StockQuantity = *update.StockQuantity
	}
	if update.ReorderLevel != nil {
		item.ReorderLevel = *update.ReorderLevel
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
