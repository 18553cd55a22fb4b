package broker

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/avvvet/giftcard-services/internal/comm"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/avvvet/giftcard-services/internal/giftsvc/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.RecordEvents = (*Broker)(nil)

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestRecordCreated(t *testing.T) {
	pub := &fakePublisher{}
	b := NewBroker(pub, "giftcard.records", "inst-1")

	b.RecordCreated(&models.GiftCardRecord{ID: 99, CardType: "Steam", Balance: 12.34})

	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "giftcard.records", pub.subjects[0])

	var msg comm.Message
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, comm.RecordCreated, msg.Type)
	assert.Equal(t, "inst-1", msg.Source)

	var rec models.GiftCardRecord
	require.NoError(t, json.Unmarshal(msg.Data, &rec))
	assert.Equal(t, int64(99), rec.ID)
	assert.Equal(t, 12.34, rec.Balance)
}

func TestRecordDeleted(t *testing.T) {
	pub := &fakePublisher{}
	NewBroker(pub, "s", "").RecordDeleted(5)

	require.Len(t, pub.payloads, 1)
	var msg comm.Message
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, comm.RecordDeleted, msg.Type)
	assert.JSONEq(t, `{"id":5}`, string(msg.Data))
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	b := NewBroker(&fakePublisher{err: errors.New("nats: connection closed")}, "s", "")
	assert.NotPanics(t, func() { b.RecordDeleted(1) })
}

func TestNilConnIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBroker(nil, "s", "").RecordCreated(&models.GiftCardRecord{ID: 1})
		var b *Broker
		b.RecordDeleted(1)
	})
}
