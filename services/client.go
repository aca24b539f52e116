package services

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lelaut/snaplu.cc/utils/logger"
)

// FeedClient is one websocket subscriber on a collection's draw feed.
type FeedClient struct {
	collectionID string
	conn         *websocket.Conn
	feed         *DrawFeed
	send         chan []byte
	once         sync.Once
}

func (c *FeedClient) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// readPump drains the connection. Subscribers never send application
// messages; reading is only needed to notice disconnects and answer control
// frames.
func (c *FeedClient) readPump() {
	defer func() {
		c.feed.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Feed %s] subscriber left", c.collectionID)
			} else {
				logger.Debugf("[Feed %s] read error: %v", c.collectionID, err)
			}
			return
		}
	}
}

func (c *FeedClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Feed %s] write error: %v", c.collectionID, err)
			return
		}
	}
}
