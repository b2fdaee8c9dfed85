package model

import "time"

const BucketSetup = "setup"

// SetupMessage remembers that a verification prompt was already posted into a
// chat, so restarts do not repost it.
type SetupMessage struct {
	ChatIdentifier string
	MessageID      int
	CreatedAt      time.Time
}
