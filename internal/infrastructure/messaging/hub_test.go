package messaging_test

import (
	"testing"

	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishDeliversToEverySubscriber(t *testing.T) {
	h := messaging.NewHub(1)
	_, a, cancelA := h.Subscribe("popup")
	defer cancelA()
	_, b, cancelB := h.Subscribe("options")
	defer cancelB()

	s := entity.DefaultSettings()
	s.GlobalEnabled = true
	deliveries := h.Publish(testCtx(), s)
	require.Len(t, deliveries, 2)
	for _, d := range deliveries {
		assert.True(t, d.OK(), d.Target)
	}

	for _, ch := range []<-chan messaging.SettingsUpdated{a, b} {
		ev := <-ch
		assert.Equal(t, messaging.ActionSettingsUpdated, ev.Action)
		assert.True(t, ev.NewSettings.GlobalEnabled)
	}
}

func TestHub_SlowSubscriberIsReportedNotBlocking(t *testing.T) {
	h := messaging.NewHub(1)
	_, _, cancel := h.Subscribe("slow")
	defer cancel()

	first := h.Publish(testCtx(), entity.DefaultSettings())
	require.Len(t, first, 1)
	assert.True(t, first[0].OK())

	second := h.Publish(testCtx(), entity.DefaultSettings())
	require.Len(t, second, 1)
	assert.ErrorIs(t, second[0].Err, messaging.ErrSubscriberBehind)
}

func TestHub_CancelRemovesAndCloses(t *testing.T) {
	h := messaging.NewHub(0)
	_, ch, cancel := h.Subscribe("ui")
	assert.Equal(t, 1, h.Len())

	cancel()
	cancel()
	assert.Equal(t, 0, h.Len())
	_, open := <-ch
	assert.False(t, open)
	assert.Empty(t, h.Publish(testCtx(), entity.DefaultSettings()))
}
