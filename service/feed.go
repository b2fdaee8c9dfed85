package service

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net/url"
	"path"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/gorilla/feeds"
	gonanoid "github.com/matoous/go-nanoid"
	"github.com/portcullis-bot/Portcullis/common"
	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
)

type FeedFormat int

const (
	FeedFormatRSS FeedFormat = iota
	FeedFormatAtom
	FeedFormatJSON
)

const eventIDLength = 21

func chatLink(chatIdentifier string) string {
	u := url.URL{
		Scheme: "https",
		Host:   config.GetConfig().Host,
		Path:   path.Join("chat", chatIdentifier),
	}
	return u.String()
}

// GetChatFeed renders the moderator feed of a chat in the requested format.
func GetChatFeed(tx *bolt.Tx, chatIdentifier string, format FeedFormat) (string, error) {
	var feedItems []*feeds.Item
	f := func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketFeed))
		if bkt == nil {
			return nil
		}
		b := bkt.Get([]byte(chatIdentifier))
		if b == nil {
			return nil
		}
		var chatFeedObj model.ChatFeed
		if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&chatFeedObj); err != nil {
			return err
		}
		feedItems = chatFeedObj.Feeds
		return nil
	}
	if tx != nil {
		if err := f(tx); err != nil {
			return "", fmt.Errorf("GetChatFeed: %w", err)
		}
	} else {
		if err := db.DB().View(f); err != nil {
			return "", fmt.Errorf("GetChatFeed: %w", err)
		}
	}
	sort.SliceStable(feedItems, func(i, j int) bool {
		return feedItems[i].Created.After(feedItems[j].Created)
	})
	feed := feeds.Feed{
		Title:       "Portcullis verification log",
		Link:        &feeds.Link{Href: chatLink(chatIdentifier)},
		Description: chatIdentifier,
		Author:      &feeds.Author{Name: "Portcullis", Email: "@Portcullis_bot"},
		Created:     time.Now(),
		Items:       feedItems,
	}
	switch format {
	case FeedFormatRSS:
		return feed.ToRss()
	case FeedFormatAtom:
		return feed.ToAtom()
	case FeedFormatJSON:
		return feed.ToJSON()
	default:
		return "", fmt.Errorf("unexpected format: %v", format)
	}
}

// AddFeed prepends an item to the chat's feed.
func AddFeed(wtx *bolt.Tx, chatIdentifier string, item feeds.Item) error {
	f := func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketFeed))
		if err != nil {
			return err
		}
		b := bkt.Get([]byte(chatIdentifier))
		var chatFeedObj model.ChatFeed
		if b != nil {
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&chatFeedObj); err != nil {
				return err
			}
		} else {
			chatFeedObj.ChatIdentifier = chatIdentifier
		}
		chatFeedObj.Feeds = append([]*feeds.Item{&item}, chatFeedObj.Feeds...)
		sort.SliceStable(chatFeedObj.Feeds, func(i, j int) bool {
			return chatFeedObj.Feeds[i].Created.After(chatFeedObj.Feeds[j].Created)
		})
		var buf bytes.Buffer
		if err = gob.NewEncoder(&buf).Encode(&chatFeedObj); err != nil {
			return err
		}
		return bkt.Put([]byte(chatIdentifier), buf.Bytes())
	}
	if wtx != nil {
		if err := f(wtx); err != nil {
			return fmt.Errorf("AddFeed: %w", err)
		}
		return nil
	}
	if err := db.DB().Update(f); err != nil {
		return fmt.Errorf("AddFeed: %w", err)
	}
	return nil
}

// FeedRecorder appends verification-flow events to the chat's moderator feed.
// Writes are best-effort: a failure is logged and never blocks the flow.
type FeedRecorder struct{}

func NewFeedRecorder() *FeedRecorder {
	return &FeedRecorder{}
}

func (FeedRecorder) Record(chatID int64, userID string, title string) {
	id, err := gonanoid.Generate(common.Alphabet, eventIDLength)
	if err != nil {
		log.Warn("FeedRecorder.Record: %v", err)
		return
	}
	chatIdentifier := ChatIdentifier(chatID)
	if err := AddFeed(nil, chatIdentifier, feeds.Item{
		Id:          id,
		Title:       title,
		Description: fmt.Sprintf("user %v", userID),
		Link:        &feeds.Link{Href: chatLink(chatIdentifier)},
		Created:     time.Now(),
	}); err != nil {
		log.Warn("FeedRecorder.Record: %v", err)
	}
}
