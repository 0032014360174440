package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/transferportal/internal/audit"
)

func boolPtr(b bool) *bool           { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func TestIsOpenEffective(t *testing.T) {
	now := time.Now()

	open := PlayerAvailability{IsOpen: true}
	assert.True(t, open.IsOpenEffective(now))

	closed := PlayerAvailability{IsOpen: false}
	assert.False(t, closed.IsOpenEffective(now))

	committed := PlayerAvailability{IsOpen: true, IsCommitted: true}
	assert.False(t, committed.IsOpenEffective(now))
}

func TestIsOpenEffectiveExpiryBoundary(t *testing.T) {
	now := time.Now()

	// Expiring exactly now is already closed.
	atBoundary := PlayerAvailability{IsOpen: true, ExpiresAt: timePtr(now)}
	assert.False(t, atBoundary.IsOpenEffective(now))

	past := PlayerAvailability{IsOpen: true, ExpiresAt: timePtr(now.Add(-time.Second))}
	assert.False(t, past.IsOpenEffective(now))

	future := PlayerAvailability{IsOpen: true, ExpiresAt: timePtr(now.Add(time.Second))}
	assert.True(t, future.IsOpenEffective(now))
}

func TestApplyCommitForcesClosed(t *testing.T) {
	now := time.Now()
	record := PlayerAvailability{IsOpen: true}

	// Committing and opening in the same patch: commitment wins.
	actions := record.Apply(UpdatePatch{IsOpen: boolPtr(true), IsCommitted: boolPtr(true)}, now)

	assert.True(t, record.IsCommitted)
	assert.False(t, record.IsOpen)
	require.NotNil(t, record.CommittedAt)
	assert.WithinDuration(t, now, *record.CommittedAt, time.Second)
	assert.Equal(t, []string{audit.ActionCommittedSet}, actions)
}

func TestApplyUncommitDoesNotReopen(t *testing.T) {
	now := time.Now()
	committedAt := now.Add(-time.Hour)
	record := PlayerAvailability{IsOpen: false, IsCommitted: true, CommittedAt: &committedAt}

	actions := record.Apply(UpdatePatch{IsCommitted: boolPtr(false)}, now)

	assert.False(t, record.IsCommitted)
	assert.Nil(t, record.CommittedAt)
	assert.False(t, record.IsOpen, "clearing commitment must not reopen visibility")
	assert.Equal(t, []string{audit.ActionCommittedCleared}, actions)
}

func TestApplyNoopCommitProducesNoActions(t *testing.T) {
	now := time.Now()

	record := PlayerAvailability{IsOpen: true}
	actions := record.Apply(UpdatePatch{IsCommitted: boolPtr(false)}, now)
	assert.Empty(t, actions)

	committedAt := now.Add(-time.Hour)
	committed := PlayerAvailability{IsCommitted: true, CommittedAt: &committedAt}
	actions = committed.Apply(UpdatePatch{IsCommitted: boolPtr(true)}, now)
	assert.Empty(t, actions)
	assert.Equal(t, committedAt, *committed.CommittedAt, "re-committing must not restamp the timestamp")
}

func TestApplyFieldPatches(t *testing.T) {
	now := time.Now()
	expires := now.Add(24 * time.Hour)
	record := PlayerAvailability{IsOpen: true}

	positions := []string{"SS", "2B"}
	levels := []string{"AAA"}
	actions := record.Apply(UpdatePatch{
		Positions: &positions,
		Levels:    &levels,
		ExpiresAt: &expires,
	}, now)

	assert.Empty(t, actions)
	assert.Equal(t, []string{"SS", "2B"}, []string(record.Positions))
	assert.Equal(t, []string{"AAA"}, []string(record.Levels))
	require.NotNil(t, record.ExpiresAt)
	assert.True(t, record.ExpiresAt.Equal(expires))
	assert.True(t, record.IsOpen)
}
