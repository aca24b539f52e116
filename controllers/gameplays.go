package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lelaut/snaplu.cc/services"
	"github.com/lelaut/snaplu.cc/utils/logger"
)

type GameplayController struct {
	games *services.GameService
}

func NewGameplayController(games *services.GameService) *GameplayController {
	return &GameplayController{games: games}
}

// Play draws one card from a collection, charging the consumer's credits.
func (ctl *GameplayController) Play(c *gin.Context) {
	var req struct {
		ConsumerID string `json:"consumer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gameplayID, err := ctl.games.Play(c.Request.Context(), req.ConsumerID, c.Param("id"))
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"gameplay_id": gameplayID})
}

// Get returns a gameplay receipt to its owning consumer.
func (ctl *GameplayController) Get(c *gin.Context) {
	consumerID := c.Query("consumer_id")
	if consumerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "consumer_id is required"})
		return
	}

	view, err := ctl.games.GetGameplay(c.Request.Context(), c.Param("id"), consumerID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func respondGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient credits"})
	case errors.Is(err, services.ErrNoEligibleCard):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No eligible card in collection"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Price catalog unavailable"})
	default:
		logger.Errorf("gameplay: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
