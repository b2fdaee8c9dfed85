package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAt(userID string, issuedAt time.Time) model.PendingVerification {
	return model.PendingVerification{
		UserID:      userID,
		ChatID:      1,
		ChallengeID: "challenge-" + userID,
		TargetName:  "apple",
		IssuedAt:    issuedAt,
	}
}

func TestMemoryStore_IssueOverwrites(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()

	first := pendingAt("u1", now)
	first.TargetName = "banana"
	require.NoError(t, s.Issue("u1", first))

	second := pendingAt("u1", now)
	second.ChallengeID = "challenge-2"
	second.TargetName = "cherry"
	require.NoError(t, s.Issue("u1", second))

	got, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_ResolveThenGetAbsent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Issue("u1", pendingAt("u1", time.Now())))
	require.NoError(t, s.Resolve("u1"))
	_, ok := s.Get("u1")
	assert.False(t, ok)

	// resolving an absent user is a no-op
	require.NoError(t, s.Resolve("missing"))
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()

	require.NoError(t, s.Issue("expired", pendingAt("expired", now.Add(-model.VerificationExpiration-time.Second))))
	require.NoError(t, s.Issue("boundary", pendingAt("boundary", now.Add(-model.VerificationExpiration))))
	require.NoError(t, s.Issue("fresh", pendingAt("fresh", now)))

	removed := s.SweepExpired(now)
	assert.Equal(t, []string{"expired"}, removed)

	_, ok := s.Get("expired")
	assert.False(t, ok)
	_, ok = s.Get("boundary")
	assert.True(t, ok, "an entry exactly at the threshold is not expired yet")
	_, ok = s.Get("fresh")
	assert.True(t, ok)
}

func TestMemoryStore_Concurrency(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("u%v", i)
			for j := 0; j < 100; j++ {
				_ = s.Issue(userID, pendingAt(userID, now))
				s.Get(userID)
				_ = s.Resolve(userID)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			s.SweepExpired(now)
		}
	}()
	wg.Wait()
	assert.Equal(t, 0, s.Len())
}

func TestBoltStore(t *testing.T) {
	db.InitDB(t.TempDir())
	s := NewBoltStore()
	now := time.Now()

	require.NoError(t, s.Issue("u1", pendingAt("u1", now)))
	overwrite := pendingAt("u1", now)
	overwrite.ChallengeID = "challenge-2"
	require.NoError(t, s.Issue("u1", overwrite))

	got, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "challenge-2", got.ChallengeID)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Issue("old", pendingAt("old", now.Add(-model.VerificationExpiration-time.Minute))))
	removed := s.SweepExpired(now)
	assert.Equal(t, []string{"old"}, removed)

	require.NoError(t, s.Resolve("u1"))
	_, ok = s.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
