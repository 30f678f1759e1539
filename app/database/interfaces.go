package database

// RadarRepository defines the storage operations backing the tech radar API.
type RadarRepository interface {
	ListItems() ([]RadarItem, error)
	CreateItem(item *RadarItem) error
	UpdateItem(id string, item RadarItem) (*RadarItem, error)
	DeleteItem(id string) (*RadarItem, error)

	GetHistory(itemID string) ([]RadarHistoryEntry, error)

	CreateSnapshot(name, description string) (*RadarSnapshot, error)
	ListSnapshots() ([]RadarSnapshot, error)
}
