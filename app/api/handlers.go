package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aipulse/app/cache"
	"aipulse/app/database"
	"aipulse/app/feed"
	"aipulse/app/ingest"
)

func NewHandler(sources []feed.Source, store *cache.Store, ingestor *ingest.Ingestor,
	radarRepo database.RadarRepository) *Handler {
	return &Handler{
		sources:   sources,
		store:     store,
		ingestor:  ingestor,
		radarRepo: radarRepo,
		startedAt: time.Now(),
	}
}

// GetArticles returns the current snapshot. An empty cache triggers one
// synchronous ingestion cycle before responding; all other reads return
// immediately.
func (h *Handler) GetArticles(c *gin.Context) {
	if h.store.IsEmpty() {
		slog.Info("Cache empty, running ingestion cycle before responding")
		h.ingestor.RunCycleIfEmpty(c.Request.Context())
	}

	articles, lastUpdated := h.store.Get()
	if articles == nil {
		articles = []feed.Article{}
	}

	c.JSON(http.StatusOK, articlesResponse{
		Articles:    articles,
		LastUpdated: lastUpdated,
		TotalCount:  len(articles),
	})
}

// Refresh forces one ingestion cycle regardless of cache state.
func (h *Handler) Refresh(c *gin.Context) {
	slog.Info("Manual refresh requested")
	h.ingestor.RunCycle(c.Request.Context())

	articles, lastUpdated := h.store.Get()
	c.JSON(http.StatusOK, refreshResponse{
		Success:      true,
		LastUpdated:  lastUpdated,
		ArticleCount: len(articles),
	})
}

// GetFeeds returns per-feed article counts computed from the current
// snapshot.
func (h *Handler) GetFeeds(c *gin.Context) {
	articles, lastUpdated := h.store.Get()

	counts := make(map[string]int, len(h.sources))
	for _, article := range articles {
		counts[article.Source]++
	}

	stats := make([]feedStats, 0, len(h.sources))
	for _, source := range h.sources {
		stats = append(stats, feedStats{
			Name:         source.Name,
			URL:          source.URL,
			Category:     source.Category,
			LastUpdated:  lastUpdated,
			ArticleCount: counts[source.Name],
		})
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetStatus(c *gin.Context) {
	articles, lastUpdated := h.store.Get()

	c.JSON(http.StatusOK, statusResponse{
		Status:       "running",
		LastUpdated:  lastUpdated,
		ArticleCount: len(articles),
		FeedCount:    len(h.sources),
		Uptime:       time.Since(h.startedAt).Seconds(),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"articles":  h.store.Len(),
	})
}

// Tech radar handlers

func (h *Handler) ListRadarItems(c *gin.Context) {
	items, err := h.radarRepo.ListItems()
	if err != nil {
		slog.Error("Database error", "operation", "list_radar_items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tech radar items"})
		return
	}

	responses := make([]radarItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toRadarItemResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       responses,
		"total":       len(responses),
		"lastUpdated": time.Now().In(time.Local),
	})
}

func (h *Handler) CreateRadarItem(c *gin.Context) {
	var req radarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	item := req.toModel()
	if err := h.radarRepo.CreateItem(&item); err != nil {
		slog.Error("Database error", "operation", "create_radar_item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tech radar item"})
		return
	}

	slog.Info("Tech radar item created", "id", item.ID, "name", item.Name)
	c.JSON(http.StatusCreated, toRadarItemResponse(item))
}

func (h *Handler) UpdateRadarItem(c *gin.Context) {
	id := c.Param("id")

	var req radarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	updated, err := h.radarRepo.UpdateItem(id, req.toModel())
	if err != nil {
		slog.Error("Database error", "operation", "update_radar_item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tech radar item"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tech radar item not found"})
		return
	}

	slog.Info("Tech radar item updated", "id", id, "name", updated.Name)
	c.JSON(http.StatusOK, toRadarItemResponse(*updated))
}

func (h *Handler) DeleteRadarItem(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.radarRepo.DeleteItem(id)
	if err != nil {
		slog.Error("Database error", "operation", "delete_radar_item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tech radar item"})
		return
	}
	if deleted == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tech radar item not found"})
		return
	}

	slog.Info("Tech radar item deleted", "id", id, "name", deleted.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Tech radar item deleted successfully"})
}

func (h *Handler) GetRadarItemHistory(c *gin.Context) {
	id := c.Param("id")

	entries, err := h.radarRepo.GetHistory(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_radar_history", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item history"})
		return
	}

	responses := make([]radarHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, radarHistoryResponse{
			ID:            entry.ID,
			ItemID:        entry.ItemID,
			ChangeType:    entry.ChangeType,
			PreviousState: entry.PreviousState,
			ChangedAt:     entry.ChangedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}

func (h *Handler) CreateRadarSnapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snapshot request"})
		return
	}

	snapshot, err := h.radarRepo.CreateSnapshot(req.Name, req.Description)
	if err != nil {
		slog.Error("Database error", "operation", "create_radar_snapshot", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create snapshot"})
		return
	}

	slog.Info("Tech radar snapshot created", "id", snapshot.ID, "name", snapshot.Name)
	c.JSON(http.StatusCreated, radarSnapshotResponse{
		ID:          snapshot.ID,
		Name:        snapshot.Name,
		Description: snapshot.Description,
		CreatedAt:   snapshot.CreatedAt,
	})
}

func (h *Handler) ListRadarSnapshots(c *gin.Context) {
	snapshots, err := h.radarRepo.ListSnapshots()
	if err != nil {
		slog.Error("Database error", "operation", "list_radar_snapshots", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch snapshots"})
		return
	}

	responses := make([]radarSnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		responses = append(responses, radarSnapshotResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
