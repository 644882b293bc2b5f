package events

import (
	"testing"
)

// Нулевой publisher соответствует развёртыванию без брокера:
// вызовы должны быть no-op, а не паникой.
func TestPublisher_NilReceiver(t *testing.T) {
	var p *Publisher

	p.Publish(EventMemberCreated, "m1", "")
	p.Publish(EventPlanAssigned, "m1", "p1")
	p.Close()
}
