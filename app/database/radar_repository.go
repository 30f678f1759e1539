package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ RadarRepository = (*SQLRadarRepository)(nil)

// SQLRadarRepository implements RadarRepository on the embedded SQLite
// database.
type SQLRadarRepository struct {
	db *DB
}

func NewRadarRepository(db *DB) *SQLRadarRepository {
	return &SQLRadarRepository{db: db}
}

// ListItems returns all active items, most recently updated first.
func (r *SQLRadarRepository) ListItems() ([]RadarItem, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, status, description, maturity_level,
		       website, tags, adoption_level, is_active, created_at, updated_at
		FROM tech_radar_items
		WHERE is_active = 1
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []RadarItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// CreateItem inserts a new item, assigning its id and timestamps.
func (r *SQLRadarRepository) CreateItem(item *RadarItem) error {
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.IsActive = true
	item.CreatedAt = now
	item.UpdatedAt = now

	tags, err := marshalTags(item.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO tech_radar_items
			(id, name, category, status, description, maturity_level,
			 website, tags, adoption_level, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, item.ID, item.Name, item.Category, item.Status, item.Description,
		item.MaturityLevel, item.Website, tags, item.AdoptionLevel,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// UpdateItem replaces the mutable fields of an active item and records the
// previous state in the history table. Returns nil when no active item with
// the given id exists.
func (r *SQLRadarRepository) UpdateItem(id string, item RadarItem) (*RadarItem, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := getActiveItem(tx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := recordHistory(tx, existing, ChangeTypeUpdate); err != nil {
		return nil, err
	}

	tags, err := marshalTags(item.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE tech_radar_items
		SET name = ?, category = ?, status = ?, description = ?,
		    maturity_level = ?, website = ?, tags = ?, adoption_level = ?,
		    updated_at = ?
		WHERE id = ? AND is_active = 1
	`, item.Name, item.Category, item.Status, item.Description,
		item.MaturityLevel, item.Website, tags, item.AdoptionLevel, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	updated := item
	updated.ID = id
	updated.IsActive = true
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = now
	return &updated, nil
}

// DeleteItem soft-deletes an active item and records the change. Returns nil
// when no active item with the given id exists.
func (r *SQLRadarRepository) DeleteItem(id string) (*RadarItem, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := getActiveItem(tx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := recordHistory(tx, existing, ChangeTypeDelete); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE tech_radar_items
		SET is_active = 0, updated_at = ?
		WHERE id = ? AND is_active = 1
	`, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	deleted := *existing
	deleted.IsActive = false
	deleted.UpdatedAt = now
	return &deleted, nil
}

// GetHistory returns the change history for an item, newest first.
func (r *SQLRadarRepository) GetHistory(itemID string) ([]RadarHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, item_id, change_type, previous_state, changed_at
		FROM tech_radar_history
		WHERE item_id = ?
		ORDER BY changed_at DESC, id DESC
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []RadarHistoryEntry
	for rows.Next() {
		var entry RadarHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.ItemID, &entry.ChangeType,
			&entry.PreviousState, &entry.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type snapshotPayload struct {
	Timestamp  time.Time   `json:"timestamp"`
	Items      []RadarItem `json:"items"`
	TotalItems int         `json:"totalItems"`
}

// CreateSnapshot captures the current active item set under a name.
func (r *SQLRadarRepository) CreateSnapshot(name, description string) (*RadarSnapshot, error) {
	items, err := r.ListItems()
	if err != nil {
		return nil, fmt.Errorf("failed to capture radar state: %w", err)
	}

	now := time.Now().UTC()
	if name == "" {
		name = "Snapshot " + now.Format("2006-01-02")
	}
	if description == "" {
		description = "Automated snapshot"
	}

	payload := snapshotPayload{
		Timestamp:  now,
		Items:      items,
		TotalItems: len(items),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	result, err := r.db.Exec(`
		INSERT INTO tech_radar_snapshots (name, description, snapshot_data, created_at)
		VALUES (?, ?, ?, ?)
	`, name, description, string(data), now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot id: %w", err)
	}

	return &RadarSnapshot{
		ID:          id,
		Name:        name,
		Description: description,
		Data:        string(data),
		CreatedAt:   now,
	}, nil
}

// ListSnapshots returns snapshot metadata, newest first, without the payload.
func (r *SQLRadarRepository) ListSnapshots() ([]RadarSnapshot, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, created_at
		FROM tech_radar_snapshots
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []RadarSnapshot
	for rows.Next() {
		var s RadarSnapshot
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (RadarItem, error) {
	var item RadarItem
	var tags string
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Status,
		&item.Description, &item.MaturityLevel, &item.Website, &tags,
		&item.AdoptionLevel, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return RadarItem{}, fmt.Errorf("failed to scan item: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		item.Tags = []string{}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	return item, nil
}

func getActiveItem(tx *sql.Tx, id string) (*RadarItem, error) {
	row := tx.QueryRow(`
		SELECT id, name, category, status, description, maturity_level,
		       website, tags, adoption_level, is_active, created_at, updated_at
		FROM tech_radar_items
		WHERE id = ? AND is_active = 1
	`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func recordHistory(tx *sql.Tx, item *RadarItem, changeType string) error {
	state, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to serialize previous state: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO tech_radar_history (item_id, change_type, previous_state, changed_at)
		VALUES (?, ?, ?, ?)
	`, item.ID, changeType, string(state), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	return nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to serialize tags: %w", err)
	}
	return string(data), nil
}
