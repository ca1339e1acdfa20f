package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminalStatus(t *testing.T) {
	assert.False(t, IsTerminalStatus(OrderStatusPending))
	assert.True(t, IsTerminalStatus(OrderStatusApproved))
	assert.True(t, IsTerminalStatus(OrderStatusRejected))
	assert.False(t, IsTerminalStatus(""))
}
