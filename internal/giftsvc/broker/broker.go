package broker

import (
	"encoding/json"

	"github.com/avvvet/giftcard-services/internal/comm"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	log "github.com/sirupsen/logrus"
)

// Publisher is the part of *nats.Conn the broker uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Broker publishes record events. A nil connection makes it a no-op so
// the services run without NATS.
type Broker struct {
	Conn     Publisher
	Subject  string
	SourceId string
}

func NewBroker(conn Publisher, subject, sourceId string) *Broker {
	return &Broker{Conn: conn, Subject: subject, SourceId: sourceId}
}

func (b *Broker) RecordCreated(rec *models.GiftCardRecord) {
	b.publish(comm.RecordCreated, rec)
}

func (b *Broker) RecordDeleted(id int64) {
	b.publish(comm.RecordDeleted, comm.RecordDeletedData{ID: id})
}

// publish never fails the caller, errors are only logged.
func (b *Broker) publish(msgType string, data interface{}) {
	if b == nil || b.Conn == nil {
		return
	}

	msg, err := comm.NewMessage(msgType, data, b.SourceId)
	if err != nil {
		log.Errorf("Error building %s event: %v", msgType, err)
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error marshaling %s event: %v", msgType, err)
		return
	}

	if err := b.Conn.Publish(b.Subject, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", b.Subject, err)
		return
	}
	log.Debugf("published %s to %s", msgType, b.Subject)
}
