package services_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
	"go.uber.org/zap"
)

func newNotifier() *services.NotificationService {
	return services.NewNotificationService(zap.NewNop())
}

func TestNotification_DefaultDurations(t *testing.T) {
	n := newNotifier()
	defer n.Clear()

	n.Success("saved")
	n.Error("failed")
	n.Warning("careful")
	n.Info("fyi")

	list := n.List()
	require.Len(t, list, 4)
	assert.Equal(t, int64(3000), list[0].DurationMS)
	assert.Equal(t, int64(8000), list[1].DurationMS)
	assert.Equal(t, int64(5000), list[2].DurationMS)
	assert.Equal(t, int64(5000), list[3].DurationMS)
}

func TestNotification_IDFormat(t *testing.T) {
	n := newNotifier()
	id := n.Show(models.NotificationInfo, "hello", 0)
	assert.Regexp(t, regexp.MustCompile(`^info_\d+_\d+$`), id)

	other := n.Show(models.NotificationInfo, "hello again", 0)
	assert.NotEqual(t, id, other)
}

func TestNotification_BoundedDropsOldest(t *testing.T) {
	n := newNotifier()
	for i := 0; i < 12; i++ {
		n.Show(models.NotificationInfo, fmt.Sprintf("msg %d", i), 0)
	}

	list := n.List()
	require.Len(t, list, services.MaxNotifications)
	assert.Equal(t, "msg 2", list[0].Message)
	assert.Equal(t, "msg 11", list[len(list)-1].Message)
}

func TestNotification_ExpiresAfterDuration(t *testing.T) {
	n := newNotifier()
	n.Show(models.NotificationInfo, "short lived", 20*time.Millisecond)
	n.Show(models.NotificationInfo, "sticky", 0)

	assert.Eventually(t, func() bool { return n.Count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "sticky", n.List()[0].Message)
	assert.True(t, n.List()[0].Persistent())
}

func TestNotification_RemoveAndClear(t *testing.T) {
	n := newNotifier()
	id := n.Error("boom")
	n.Info("note")

	n.Remove("missing")
	assert.Equal(t, 2, n.Count())

	n.Remove(id)
	assert.Equal(t, 1, n.Count())
	assert.False(t, n.HasErrors())

	n.Clear()
	assert.Zero(t, n.Count())
}

type stringer struct{}

func (stringer) String() string { return "from stringer" }

func TestNotification_HandleErrorMessageResolution(t *testing.T) {
	tests := []struct {
		name        string
		err         any
		userMessage string
		want        string
	}{
		{"user message wins", errors.New("raw"), "Friendly", "Friendly"},
		{"error message", errors.New("raw failure"), "", "raw failure"},
		{"string value", "plain text", "", "plain text"},
		{"stringer", stringer{}, "", "from stringer"},
		{"fallback", 42, "", services.FallbackErrorMessage},
		{"nil", nil, "", services.FallbackErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNotifier()
			defer n.Clear()
			n.HandleError(tt.err, tt.userMessage)

			errs := n.ByType(models.NotificationError)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[0].Message)
			assert.True(t, n.HasErrors())
		})
	}
}

func TestNotificationHub_PerKey(t *testing.T) {
	hub := services.NewNotificationHub(zap.NewNop())

	hub.For("a").Info("for a")
	assert.Equal(t, 1, hub.For("a").Count())
	assert.Zero(t, hub.For("b").Count())

	hub.Drop("a")
	assert.Zero(t, hub.For("a").Count())
}

func TestNotificationHub_ForgetsIdleEmptyNotifiers(t *testing.T) {
	hub := services.NewNotificationHub(zap.NewNop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	services.SetClock(hub, func() time.Time { return now })

	hub.For("quiet")
	hub.For("busy").Show(models.NotificationInfo, "pinned", 0)
	hub.For("recent")
	assert.Equal(t, 3, services.HubSize(hub))

	now = now.Add(9 * time.Minute)
	hub.For("recent")
	now = now.Add(2 * time.Minute)
	hub.For("other")

	// quiet was idle and empty; busy still holds a message; recent was used.
	assert.Equal(t, 3, services.HubSize(hub))
	assert.Equal(t, 1, hub.For("busy").Count())
	assert.Zero(t, hub.For("quiet").Count())
}
