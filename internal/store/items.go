package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/findez/findez/internal/model"
)

// itemColumns is the column list used by every item SELECT, kept in one
// place so scanItem stays in sync.
const itemColumns = `item_id, user_id, name, category, subcategory, brand, part_number,
	tags, confidence, quantity, location, image_mime, barcode, purchase_source, notes,
	created_at, updated_at`

type itemScanner interface {
	Scan(dest ...any) error
}

func scanItem(row itemScanner) (*model.Item, error) {
	item := &model.Item{}
	var subcategory, brand, partNumber, tags, imageMime, barcode, purchaseSource, notes sql.NullString
	var confidence sql.NullFloat64

	err := row.Scan(
		&item.ItemID, &item.UserID, &item.Name, &item.Category, &subcategory, &brand,
		&partNumber, &tags, &confidence, &item.Quantity, &item.Location, &imageMime,
		&barcode, &purchaseSource, &notes, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Subcategory = subcategory.String
	item.Brand = brand.String
	item.PartNumber = partNumber.String
	item.ImageMime = imageMime.String
	item.Barcode = barcode.String
	item.PurchaseSource = purchaseSource.String
	item.Notes = notes.String
	if confidence.Valid {
		c := confidence.Float64
		item.Confidence = &c
	}
	if tags.Valid && tags.String != "" {
		// Malformed tag JSON is treated as no tags.
		_ = json.Unmarshal([]byte(tags.String), &item.Tags)
	}
	return item, nil
}

func encodeTags(tags []string) any {
	if len(tags) == 0 {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return string(raw)
}

// CreateItem inserts a new item for a user, assigning a fresh item ID.
// Negative quantities are clamped to zero.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, item model.Item) (*model.Item, error) {
	if item.Name == "" || item.Category == "" || item.Location == "" {
		return nil, fmt.Errorf("name, category, and location are required")
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (item_id, user_id, name, category, subcategory, brand, part_number,
		                    tags, confidence, quantity, location, barcode, purchase_source, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, item.Name, item.Category, nullable(item.Subcategory), nullable(item.Brand),
		nullable(item.PartNumber), encodeTags(item.Tags), item.Confidence, item.Quantity,
		item.Location, nullable(item.Barcode), nullable(item.PurchaseSource), nullable(item.Notes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, userID, id)
}

// BulkFailure records why one entry of a bulk create was rejected.
type BulkFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BulkCreateItems inserts a batch of extracted items. Invalid entries are
// skipped and reported individually; valid entries are inserted in one
// transaction.
func BulkCreateItems(ctx context.Context, db *sql.DB, userID int64, items []model.ExtractedItem) ([]model.Item, []BulkFailure, error) {
	var failures []BulkFailure
	var pending []model.Item

	for i, it := range items {
		if it.Name == "" || it.Category == "" || it.Location == "" {
			failures = append(failures, BulkFailure{Index: i, Reason: "name, category, and location are required"})
			continue
		}
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		pending = append(pending, model.Item{
			Name:        it.Name,
			Category:    it.Category,
			Subcategory: it.Subcategory,
			Brand:       it.Brand,
			PartNumber:  it.PartNumber,
			Tags:        it.Tags,
			Confidence:  it.Confidence,
			Quantity:    qty,
			Location:    it.Location,
			Barcode:     it.Barcode,
			Notes:       it.Notes,
		})
	}

	if len(pending) == 0 {
		return nil, failures, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var ids []string
	for _, it := range pending {
		id := uuid.NewString()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (item_id, user_id, name, category, subcategory, brand, part_number,
			                    tags, confidence, quantity, location, barcode, purchase_source, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, userID, it.Name, it.Category, nullable(it.Subcategory), nullable(it.Brand),
			nullable(it.PartNumber), encodeTags(it.Tags), it.Confidence, it.Quantity,
			it.Location, nullable(it.Barcode), nullable(it.PurchaseSource), nullable(it.Notes),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("inserting item %q: %w", it.Name, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing bulk create: %w", err)
	}

	var inserted []model.Item
	for _, id := range ids {
		item, err := GetItem(ctx, db, userID, id)
		if err != nil {
			return nil, nil, err
		}
		if item != nil {
			inserted = append(inserted, *item)
		}
	}
	return inserted, failures, nil
}

// GetItem returns one of the user's items by ID.
func GetItem(ctx context.Context, db *sql.DB, userID int64, itemID string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all of a user's items, newest first.
func ListItems(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE user_id = ? ORDER BY created_at DESC, item_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// SearchItems returns the user's items matching q across name, category,
// location, notes, purchase source, and barcode. An empty query returns
// the full list.
func SearchItems(ctx context.Context, db *sql.DB, userID int64, q string) ([]model.Item, error) {
	if q == "" {
		return ListItems(ctx, db, userID)
	}

	pattern := "%" + q + "%"
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items
		 WHERE user_id = ?
		   AND (name LIKE ? OR category LIKE ? OR location LIKE ?
		        OR notes LIKE ? OR purchase_source LIKE ? OR barcode LIKE ?)
		 ORDER BY created_at DESC, item_id`,
		userID, pattern, pattern, pattern, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// UpdateItem applies a partial update and returns the fresh item, or nil
// if the item does not exist for this user. Quantity updates are clamped
// at zero.
func UpdateItem(ctx context.Context, db *sql.DB, userID int64, itemID string, upd model.ItemUpdate) (*model.Item, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("no updates applied")
	}

	set := "updated_at = CURRENT_TIMESTAMP"
	var args []any
	add := func(col string, v any) {
		set += ", " + col + " = ?"
		args = append(args, v)
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Subcategory != nil {
		add("subcategory", nullable(*upd.Subcategory))
	}
	if upd.Brand != nil {
		add("brand", nullable(*upd.Brand))
	}
	if upd.PartNumber != nil {
		add("part_number", nullable(*upd.PartNumber))
	}
	if upd.Tags != nil {
		add("tags", encodeTags(*upd.Tags))
	}
	if upd.Quantity != nil {
		qty := *upd.Quantity
		if qty < 0 {
			qty = 0
		}
		add("quantity", qty)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Barcode != nil {
		add("barcode", nullable(*upd.Barcode))
	}
	if upd.PurchaseSource != nil {
		add("purchase_source", nullable(*upd.PurchaseSource))
	}
	if upd.Notes != nil {
		add("notes", nullable(*upd.Notes))
	}

	args = append(args, userID, itemID)
	result, err := db.ExecContext(ctx,
		`UPDATE items SET `+set+` WHERE user_id = ? AND item_id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}

	return GetItem(ctx, db, userID, itemID)
}

// DeleteItem removes an item. Returns whether a row was deleted.
func DeleteItem(ctx context.Context, db *sql.DB, userID int64, itemID string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return n > 0, nil
}

// SetItemImage stores a processed photo for an item.
func SetItemImage(ctx context.Context, db *sql.DB, userID int64, itemID string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND item_id = ?`,
		image, mime, userID, itemID,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, userID int64, itemID string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// nullable maps an empty string to NULL so optional text columns stay NULL
// instead of accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
