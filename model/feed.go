package model

import (
	"github.com/gorilla/feeds"
)

const (
	BucketFeed = "feed"
)

// ChatFeed is the per-chat moderator feed of verification events.
type ChatFeed struct {
	ChatIdentifier string
	Feeds          []*feeds.Item
}
