package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
)

type CollectionController struct {
	db *gorm.DB
}

func NewCollectionController(db *gorm.DB) *CollectionController {
	return &CollectionController{db: db}
}

// List returns all confirmed collections.
func (ctl *CollectionController) List(c *gin.Context) {
	var collections []models.Collection
	if err := ctl.db.Where("confirmed = ?", true).Find(&collections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, collections)
}

// Get returns one collection with its cards. Asset URLs are never exposed
// here; they are only signed for a gameplay's owner.
func (ctl *CollectionController) Get(c *gin.Context) {
	id := c.Param("id")

	var collection models.Collection
	if err := ctl.db.Where("id = ? AND confirmed = ?", id, true).First(&collection).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var cards []models.Card
	if err := ctl.db.Where("collection_id = ?", id).Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
		"cards":      cards,
	})
}
