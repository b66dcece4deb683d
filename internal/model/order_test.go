package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}

func TestCanTransitionHappyPath(t *testing.T) {
	path := []string{StatusPending, StatusConfirmed, StatusPreparing, StatusOnTheWay, StatusDelivered}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransition(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCanTransitionNoSkippingOrRewinding(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, StatusPreparing))
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestCancellableFromAnyNonTerminalState(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusOnTheWay} {
		assert.True(t, CanTransition(s, StatusCancelled), s)
	}
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	for _, to := range []string{StatusPending, StatusConfirmed, StatusPreparing, StatusOnTheWay, StatusDelivered} {
		assert.False(t, CanTransition(StatusDelivered, to), "delivered -> %s", to)
		assert.False(t, CanTransition(StatusCancelled, to), "cancelled -> %s", to)
	}
}

func TestUnknownSourceStatusOnlyCancels(t *testing.T) {
	// Legacy free-text rows can still be cancelled but nothing else.
	assert.True(t, CanTransition("in_review", StatusCancelled))
	assert.False(t, CanTransition("in_review", StatusConfirmed))
}
