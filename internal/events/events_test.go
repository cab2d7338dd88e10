package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func sampleContribution() domain.Contribution {
	return domain.Contribution{
		ContributionID: "c-1",
		MemberID:       "m-1",
		Amount:         decimal.RequireFromString("25000"),
		Date:           time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:           domain.Mandatory,
		Status:         domain.StatusPending,
	}
}

func TestContributionEvent_RoundTrip(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	event := NewContributionEvent(ContributionSubmitted, sampleContribution(), at)

	body, err := event.ToJSON()
	require.NoError(t, err)

	decoded, err := ContributionEventFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "2025-01-15", decoded.Date)
	assert.True(t, event.Amount.Equal(decoded.Amount))

	_, err = ContributionEventFromJSON([]byte(`{"eventID":"x"}`))
	assert.Error(t, err)
}

func TestContributionEvent_Notification(t *testing.T) {
	c := sampleContribution()

	title, msg := NewContributionEvent(ContributionSubmitted, c, time.Now()).Notification()
	assert.Equal(t, "New Contribution", title)
	assert.Equal(t, "mandatory contribution of 25000.00 was successfully processed.", msg)

	c.Status = domain.StatusApproved
	title, _ = NewContributionEvent(ContributionStatusChanged, c, time.Now()).Notification()
	assert.Equal(t, "Contribution Approved", title)

	c.Status = domain.StatusRejected
	title, _ = NewContributionEvent(ContributionStatusChanged, c, time.Now()).Notification()
	assert.Equal(t, "Contribution Rejected", title)
}

func TestHandleDelivery(t *testing.T) {
	body, err := NewContributionEvent(ContributionSubmitted, sampleContribution(), time.Now()).ToJSON()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("acks handled event", func(t *testing.T) {
		ack := &fakeAck{}
		var got *ContributionEvent
		handleDelivery(ctx, body, ack, func(_ context.Context, e *ContributionEvent) error {
			got = e
			return nil
		})
		assert.True(t, ack.acked)
		require.NotNil(t, got)
		assert.Equal(t, "c-1", got.ContributionID)
	})

	t.Run("requeues on handler failure", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(ctx, body, ack, func(context.Context, *ContributionEvent) error {
			return errors.New("boom")
		})
		assert.True(t, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("drops undecodable message", func(t *testing.T) {
		ack := &fakeAck{}
		handleDelivery(ctx, []byte("not json"), ack, func(context.Context, *ContributionEvent) error {
			t.Fatal("handler must not be called")
			return nil
		})
		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewContributionEvent(ContributionSubmitted, sampleContribution(), time.Now())))
	assert.NoError(t, p.Close())
}
