package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelay(t *testing.T) {
	var got [][]byte
	b := NewBroker(nil, func(p []byte) { got = append(got, p) })

	created := []byte(`{"type":"record.created","data":{"id":1},"timestamp":"2024-01-01T00:00:00Z"}`)
	b.relay(created)
	b.relay([]byte(`{"type":"record.deleted","data":{"id":1},"timestamp":"2024-01-01T00:00:00Z"}`))
	b.relay([]byte(`{"type":"something.else","data":{}}`))
	b.relay([]byte(`not json`))

	assert.Len(t, got, 2)
	assert.Equal(t, created, got[0])
}
