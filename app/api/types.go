package api

import (
	"time"

	"aipulse/app/cache"
	"aipulse/app/database"
	"aipulse/app/feed"
	"aipulse/app/ingest"
)

type Handler struct {
	sources   []feed.Source
	store     *cache.Store
	ingestor  *ingest.Ingestor
	radarRepo database.RadarRepository
	startedAt time.Time
}

type articlesResponse struct {
	Articles    []feed.Article `json:"articles"`
	LastUpdated time.Time      `json:"lastUpdated"`
	TotalCount  int            `json:"totalCount"`
}

type refreshResponse struct {
	Success      bool      `json:"success"`
	LastUpdated  time.Time `json:"lastUpdated"`
	ArticleCount int       `json:"articleCount"`
}

type feedStats struct {
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Category     string    `json:"category"`
	LastUpdated  time.Time `json:"lastUpdated"`
	ArticleCount int       `json:"articleCount"`
}

type statusResponse struct {
	Status       string    `json:"status"`
	LastUpdated  time.Time `json:"lastUpdated"`
	ArticleCount int       `json:"articleCount"`
	FeedCount    int       `json:"feedCount"`
	Uptime       float64   `json:"uptime"`
}

// radarItemRequest is the create/update payload for tech radar items.
type radarItemRequest struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Status        string   `json:"status" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	MaturityLevel string   `json:"maturityLevel"`
	Website       string   `json:"website"`
	Tags          []string `json:"tags"`
	AdoptionLevel int      `json:"adoptionLevel"`
}

type radarItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Description   string    `json:"description"`
	MaturityLevel string    `json:"maturityLevel"`
	Website       string    `json:"website"`
	Tags          []string  `json:"tags"`
	AdoptionLevel int       `json:"adoptionLevel"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

type radarHistoryResponse struct {
	ID            int64     `json:"id"`
	ItemID        string    `json:"itemId"`
	ChangeType    string    `json:"changeType"`
	PreviousState string    `json:"previousState"`
	ChangedAt     time.Time `json:"changedAt"`
}

type radarSnapshotResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type snapshotRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toRadarItemResponse(item database.RadarItem) radarItemResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return radarItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		Status:        item.Status,
		Description:   item.Description,
		MaturityLevel: item.MaturityLevel,
		Website:       item.Website,
		Tags:          tags,
		AdoptionLevel: item.AdoptionLevel,
		LastUpdated:   item.UpdatedAt,
	}
}

func (r radarItemRequest) toModel() database.RadarItem {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return database.RadarItem{
		Name:          r.Name,
		Category:      r.Category,
		Status:        r.Status,
		Description:   r.Description,
		MaturityLevel: r.MaturityLevel,
		Website:       r.Website,
		Tags:          tags,
		AdoptionLevel: r.AdoptionLevel,
	}
}
