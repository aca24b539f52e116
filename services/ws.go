package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/lelaut/snaplu.cc/models"
	"github.com/lelaut/snaplu.cc/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to the web frontend's origins
		return true
	},
}

// HandleDrawFeed upgrades the request and subscribes it to a confirmed
// collection's draw feed.
func HandleDrawFeed(db *gorm.DB, feed *DrawFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionID := c.Param("id")

		var collection models.Collection
		err := db.Where("id = ? AND confirmed = ?", collectionID, true).First(&collection).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("[Feed %s] upgrade error: %v", collectionID, err)
			return
		}

		feed.addClient(&FeedClient{
			collectionID: collectionID,
			conn:         conn,
			feed:         feed,
			send:         make(chan []byte, 32),
		})
	}
}
