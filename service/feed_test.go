package service

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/feeds"
	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initFeedDB opens a throwaway database. Config is loaded first so the lazy
// GetConfig inside the feed link builder cannot reopen the default database
// mid-test.
func initFeedDB(t *testing.T) {
	config.GetConfig()
	db.InitDB(t.TempDir())
}

func TestChatFeed_RoundTrip(t *testing.T) {
	initFeedDB(t)
	ident := ChatIdentifier(42)

	older := feeds.Item{
		Id:          "e1",
		Title:       "member joined",
		Description: "user u1",
		Created:     time.Now().Add(-time.Hour),
	}
	newer := feeds.Item{
		Id:          "e2",
		Title:       "challenge passed",
		Description: "user u1",
		Created:     time.Now(),
	}
	// insert oldest last; rendering must still be newest first
	require.NoError(t, AddFeed(nil, ident, newer))
	require.NoError(t, AddFeed(nil, ident, older))

	for _, format := range []FeedFormat{FeedFormatRSS, FeedFormatAtom, FeedFormatJSON} {
		str, err := GetChatFeed(nil, ident, format)
		require.NoError(t, err, "format %v", format)
		assert.Contains(t, str, "member joined")
		assert.Contains(t, str, "challenge passed")
		assert.Less(t, strings.Index(str, "challenge passed"), strings.Index(str, "member joined"),
			"format %v: newest item must render first", format)
	}

	// feeds are scoped per chat
	str, err := GetChatFeed(nil, ChatIdentifier(43), FeedFormatRSS)
	require.NoError(t, err)
	assert.NotContains(t, str, "member joined")
}

func TestGetChatFeed_EmptyChat(t *testing.T) {
	initFeedDB(t)
	for _, format := range []FeedFormat{FeedFormatRSS, FeedFormatAtom, FeedFormatJSON} {
		_, err := GetChatFeed(nil, ChatIdentifier(42), format)
		assert.NoError(t, err, "format %v", format)
	}
}

func TestGetChatFeed_UnknownFormat(t *testing.T) {
	initFeedDB(t)
	_, err := GetChatFeed(nil, ChatIdentifier(42), FeedFormat(99))
	assert.Error(t, err)
}

func TestFeedRecorder_Record(t *testing.T) {
	initFeedDB(t)
	NewFeedRecorder().Record(42, "u1", "challenge passed")

	str, err := GetChatFeed(nil, ChatIdentifier(42), FeedFormatJSON)
	require.NoError(t, err)
	assert.Contains(t, str, "challenge passed")
	assert.Contains(t, str, "user u1")
}

func TestFeedRecorder_BestEffort(t *testing.T) {
	initFeedDB(t)
	require.NoError(t, db.DB().Close())
	// a write failure is logged, never panics
	NewFeedRecorder().Record(42, "u1", "member joined")
}
