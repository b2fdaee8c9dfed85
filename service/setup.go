package service

import (
	"time"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
)

// SetupMessagePosted reports whether a verification prompt was already posted
// into the chat.
func SetupMessagePosted(chatIdentifier string) (posted bool, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketSetup))
		if bkt == nil {
			return nil
		}
		posted = bkt.Get([]byte(chatIdentifier)) != nil
		return nil
	})
	return posted, err
}

// MarkSetupMessage remembers the posted verification prompt.
func MarkSetupMessage(chatIdentifier string, messageID int) error {
	return db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketSetup))
		if err != nil {
			return err
		}
		b, err := jsoniter.Marshal(&model.SetupMessage{
			ChatIdentifier: chatIdentifier,
			MessageID:      messageID,
			CreatedAt:      time.Now(),
		})
		if err != nil {
			return err
		}
		return bkt.Put([]byte(chatIdentifier), b)
	})
}
