package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"giveaway-bot/internal/features/giveaway/models"
	giveawayservice "giveaway-bot/internal/features/giveaway/service"
)

type GiveawayHandler struct {
	service giveawayservice.GiveawayService
}

func NewGiveawayHandler(service giveawayservice.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{service: service}
}

func (h *GiveawayHandler) RegisterRoutes(router *gin.RouterGroup) {
	giveaways := router.Group("/giveaways")
	{
		giveaways.GET("/active", h.listActive)
		giveaways.GET("/:channel_id", h.getByChannel)
	}
}

// giveawaySummary is the external view of a giveaway. The participant list
// stays internal; only the count is exposed.
type giveawaySummary struct {
	ID                string    `json:"id"`
	ChannelID         int64     `json:"channel_id"`
	Status            string    `json:"status"`
	WinnersCount      int       `json:"winners_count"`
	ParticipantsCount int       `json:"participants_count"`
	LedgerURL         string    `json:"ledger_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func summarize(giveaway *models.Giveaway) giveawaySummary {
	return giveawaySummary{
		ID:                giveaway.ID,
		ChannelID:         giveaway.ChannelID,
		Status:            string(giveaway.Status),
		WinnersCount:      giveaway.WinnersCount,
		ParticipantsCount: len(giveaway.Participants),
		LedgerURL:         giveaway.LedgerURL,
		CreatedAt:         giveaway.CreatedAt,
	}
}

func (h *GiveawayHandler) listActive(c *gin.Context) {
	giveaways, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list giveaways"})
		return
	}

	summaries := make([]giveawaySummary, 0, len(giveaways))
	for _, giveaway := range giveaways {
		summaries = append(summaries, summarize(giveaway))
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *GiveawayHandler) getByChannel(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	giveaway, err := h.service.GetByChannel(c.Request.Context(), channelID)
	if err == giveawayservice.ErrNoActiveGiveaway {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active giveaway"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load giveaway"})
		return
	}

	c.JSON(http.StatusOK, summarize(giveaway))
}
