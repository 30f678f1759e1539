package database

import (
	"time"
)

// RadarItem is a tool or technology tracked on the tech radar. Deletion is a
// soft delete: IsActive flips to false and the row stays.
type RadarItem struct {
	ID            string
	Name          string
	Category      string
	Status        string
	Description   string
	MaturityLevel string
	Website       string
	Tags          []string
	AdoptionLevel int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RadarHistoryEntry records one change to a radar item. PreviousState holds
// the item as JSON before the change was applied.
type RadarHistoryEntry struct {
	ID            int64
	ItemID        string
	ChangeType    string
	PreviousState string
	ChangedAt     time.Time
}

// RadarSnapshot is a named point-in-time capture of the whole radar.
// Data holds the serialized item set; it is omitted from listings.
type RadarSnapshot struct {
	ID          int64
	Name        string
	Description string
	Data        string
	CreatedAt   time.Time
}

const (
	ChangeTypeUpdate = "update"
	ChangeTypeDelete = "delete"
)
