package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
)

type ConsumerController struct {
	db *gorm.DB
}

func NewConsumerController(db *gorm.DB) *ConsumerController {
	return &ConsumerController{db: db}
}

// Register creates a consumer account with an empty credit balance. Credits
// arrive later through the external top-up flow.
func (ctl *ConsumerController) Register(c *gin.Context) {
	var req struct {
		ID       string `json:"id" binding:"required"`
		Name     string `json:"name"`
		Currency string `json:"currency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// check if already exists
	var existing models.Consumer
	if err := ctl.db.First(&existing, "id = ?", req.ID).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Consumer already exists"})
		return
	}

	consumer := models.Consumer{
		ID:              req.ID,
		Name:            req.Name,
		Credits:         0,
		CreditsCurrency: req.Currency,
	}
	if err := ctl.db.Create(&consumer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consumer"})
		return
	}

	c.JSON(http.StatusCreated, consumer)
}

// Get fetches a consumer with its current balance.
func (ctl *ConsumerController) Get(c *gin.Context) {
	var consumer models.Consumer
	if err := ctl.db.First(&consumer, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consumer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, consumer)
}
