package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsMarkRead(t *testing.T) {
	env := newTestEnv(t)

	env.notifications.Notify(env.ctx, "u1", "badge", "Badge earned", "First Steps", map[string]interface{}{"badge_id": "first-steps"})
	env.clock.Advance(time.Minute)
	env.notifications.Notify(env.ctx, "u1", "level_up", "Level 2", "", nil)
	env.notifications.Notify(env.ctx, "u2", "badge", "Badge earned", "", nil)

	rows, err := env.notifications.ListNotifications(env.ctx, "u1", false, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "level_up", rows[0].Type)
	assert.Equal(t, "first-steps", rows[1].Data["badge_id"])

	n, err := env.notifications.MarkRead(env.ctx, "u1", []string{rows[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Already read, or someone else's.
	n, err = env.notifications.MarkRead(env.ctx, "u2", []string{rows[0].ID, rows[1].ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	unread, err := env.notifications.ListNotifications(env.ctx, "u1", true, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, rows[0].ID, unread[0].ID)
}
