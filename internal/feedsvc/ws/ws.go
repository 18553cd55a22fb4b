package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

const writeWait = 10 * time.Second

type client struct {
	mu   sync.Mutex // gorilla allows one concurrent writer
	conn Conn
}

// Ws tracks live feed connections by socket id.
type Ws struct {
	connMap sync.Map
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn Conn) {
	s.connMap.Store(socketId, &client{conn: conn})
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

func (s *Ws) Count() int {
	count := 0
	s.connMap.Range(func(key, value any) bool {
		count++
		return true
	})
	return count
}

// Send writes payload to one connection.
func (s *Ws) Send(socketId string, payload []byte) error {
	v, ok := s.connMap.Load(socketId)
	if !ok {
		return nil
	}
	return v.(*client).write(payload)
}

// Broadcast writes payload to every connection. A connection that fails
// the write is closed and forgotten.
func (s *Ws) Broadcast(payload []byte) {
	s.connMap.Range(func(key, value any) bool {
		c := value.(*client)
		if err := c.write(payload); err != nil {
			log.Warnf("dropping live feed socket %s: %v", key, err)
			c.conn.Close()
			s.connMap.Delete(key)
		}
		return true
	})
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
