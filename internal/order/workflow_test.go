package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"Forward", StatusCreated, StatusConfirmed, true},
		{"ForwardChain", StatusCourierAssigned, StatusDispatched, true},
		{"FinalStep", StatusDispatched, StatusDelivered, true},
		{"SkipAhead", StatusCreated, StatusDispatched, false},
		{"Backward", StatusConfirmed, StatusCreated, false},
		{"CancelFromCreated", StatusCreated, StatusCancelled, true},
		{"CancelFromDispatched", StatusDispatched, StatusCancelled, true},
		{"DeliveredIsTerminal", StatusDelivered, StatusCancelled, false},
		{"CancelledIsTerminal", StatusCancelled, StatusCreated, false},
		{"NoChange", StatusDelivered, StatusDelivered, true},
		{"IntoCustomCode", StatusCreated, "on_hold", true},
		{"OutOfCustomCode", "on_hold", StatusDelivered, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestStamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("SetsMilestoneOnce", func(t *testing.T) {
		o := &Order{}
		stamp(o, StatusConfirmed, now)
		assert.Equal(t, now, *o.ConfirmedAt)

		later := now.Add(time.Hour)
		stamp(o, StatusConfirmed, later)
		assert.Equal(t, now, *o.ConfirmedAt)
	})

	t.Run("DeliveredOnlyOnDelivered", func(t *testing.T) {
		o := &Order{}
		stamp(o, StatusDispatched, now)
		assert.Nil(t, o.DeliveredAt)
		assert.NotNil(t, o.DispatchedAt)

		stamp(o, StatusDelivered, now)
		assert.NotNil(t, o.DeliveredAt)
	})

	t.Run("CustomCodeStampsNothing", func(t *testing.T) {
		o := &Order{}
		stamp(o, "on_hold", now)
		assert.Nil(t, o.ConfirmedAt)
		assert.Nil(t, o.DeliveredAt)
	})
}
