package service

import (
	"testing"

	"github.com/portcullis-bot/Portcullis/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMessageDedup(t *testing.T) {
	db.InitDB(t.TempDir())
	ident := ChatIdentifier(42)

	posted, err := SetupMessagePosted(ident)
	require.NoError(t, err)
	assert.False(t, posted)

	require.NoError(t, MarkSetupMessage(ident, 7))

	posted, err = SetupMessagePosted(ident)
	require.NoError(t, err)
	assert.True(t, posted, "the prompt must not be reposted across restarts")

	// other chats are unaffected
	posted, err = SetupMessagePosted(ChatIdentifier(43))
	require.NoError(t, err)
	assert.False(t, posted)
}
