package feed

import (
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/openuam/uamd/infra/logger"
)

type fakeMessage struct {
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return "uam/requests" }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

var _ mqtt.Message = fakeMessage{}

func TestFeedBuffersAndDrains(t *testing.T) {
	f := &MQTTFeed{log: logger.NopLogger{}}
	f.onMessage(nil, fakeMessage{payload: []byte(
		`{"id":"r1","origin_x":10,"origin_y":20,"dest_x":30,"dest_y":40,"distance":500}`)})
	f.onMessage(nil, fakeMessage{payload: []byte(`not json`)})

	reqs := f.Drain(42)
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	r := reqs[0]
	if r.ID != "r1" || r.Origin.X != 10 || r.Destination.Y != 40 || r.Distance != 500 {
		t.Errorf("decoded request mismatch: %+v", r)
	}
	if r.Submitted != 42 {
		t.Errorf("submission time not stamped: %v", r.Submitted)
	}
	if got := f.Drain(43); len(got) != 0 {
		t.Errorf("drain should empty the buffer, got %d", len(got))
	}
}
