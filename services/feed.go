package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lelaut/snaplu.cc/utils/logger"
)

// DrawEvent is what feed subscribers see after a draw commits. No card or
// consumer identifiers are exposed, only the rarity that dropped.
type DrawEvent struct {
	CollectionID string    `json:"collection_id"`
	Rarity       string    `json:"rarity"`
	At           time.Time `json:"at"`
}

// DrawFeed fans committed draws out to websocket subscribers, keyed by
// collection.
type DrawFeed struct {
	mu      sync.RWMutex
	clients map[string]map[*FeedClient]bool
}

func NewDrawFeed() *DrawFeed {
	return &DrawFeed{clients: make(map[string]map[*FeedClient]bool)}
}

func (f *DrawFeed) addClient(c *FeedClient) {
	f.mu.Lock()
	if f.clients[c.collectionID] == nil {
		f.clients[c.collectionID] = make(map[*FeedClient]bool)
	}
	f.clients[c.collectionID][c] = true
	total := len(f.clients[c.collectionID])
	f.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Debugf("[Feed %s] subscriber joined (total=%d)", c.collectionID, total)
}

func (f *DrawFeed) removeClient(c *FeedClient) {
	f.mu.Lock()
	if subs, ok := f.clients[c.collectionID]; ok {
		if subs[c] {
			delete(subs, c)
			c.Close()
		}
		if len(subs) == 0 {
			delete(f.clients, c.collectionID)
		}
	}
	f.mu.Unlock()
}

// Publish broadcasts event to the collection's subscribers. Best effort:
// a subscriber that cannot keep up is dropped, never awaited.
func (f *DrawFeed) Publish(event DrawEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("[Feed] marshal event: %v", err)
		return
	}

	// Sends happen under the read lock and channel closes under the write
	// lock, so a send can never hit a closed channel.
	f.mu.RLock()
	var drop []*FeedClient
	for c := range f.clients[event.CollectionID] {
		select {
		case c.send <- payload:
		default:
			drop = append(drop, c)
		}
	}
	f.mu.RUnlock()

	for _, c := range drop {
		logger.Debugf("[Feed %s] dropping slow subscriber", c.collectionID)
		f.removeClient(c)
	}
}
