package broker

import (
	"encoding/json"

	"github.com/avvvet/giftcard-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker relays record events from NATS to the live feed sockets.
type Broker struct {
	Conn      *nats.Conn
	Broadcast func([]byte)
}

func NewBroker(conn *nats.Conn, fncBroadcast func([]byte)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// consume record events from the api and admin services
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	b.relay(msgNats.Data)
}

// relay forwards known record events as received.
func (b *Broker) relay(data []byte) {
	message := &comm.Message{}
	if err := json.Unmarshal(data, message); err != nil {
		log.Errorf("Error decoding record event: %s", err)
		return
	}

	switch message.Type {
	case comm.RecordCreated, comm.RecordDeleted:
		b.Broadcast(data)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}
