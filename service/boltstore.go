package service

import (
	"time"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
)

// BoltStore keeps pending verifications in the verification bucket so they
// survive restarts. Same contract as MemoryStore.
type BoltStore struct{}

func NewBoltStore() *BoltStore {
	return &BoltStore{}
}

func (s *BoltStore) Issue(userID string, v model.PendingVerification) error {
	return db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketVerification))
		if err != nil {
			return err
		}
		b, err := jsoniter.Marshal(&v)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(userID), b)
	})
}

func (s *BoltStore) Get(userID string) (v model.PendingVerification, ok bool) {
	_ = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketVerification))
		if bkt == nil {
			return nil
		}
		b := bkt.Get([]byte(userID))
		if b == nil {
			return nil
		}
		if err := jsoniter.Unmarshal(b, &v); err != nil {
			log.Warn("BoltStore.Get: %v", err)
			return nil
		}
		ok = true
		return nil
	})
	return v, ok
}

func (s *BoltStore) Resolve(userID string) error {
	return db.DB().Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketVerification))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(userID))
	})
}

func (s *BoltStore) SweepExpired(now time.Time) (removed []string) {
	if err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketVerification))
		if err != nil {
			return err
		}
		var listClean [][]byte
		if err = bkt.ForEach(func(k, b []byte) error {
			var v model.PendingVerification
			if err := jsoniter.Unmarshal(b, &v); err != nil {
				// invalid records are regarded as expired
				listClean = append(listClean, k)
				return nil
			}
			if v.Expired(now) {
				listClean = append(listClean, k)
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range listClean {
			if err = bkt.Delete(k); err != nil {
				return err
			}
			removed = append(removed, string(k))
		}
		return nil
	}); err != nil {
		log.Warn("BoltStore.SweepExpired: %v", err)
	}
	return removed
}

func (s *BoltStore) Len() (n int) {
	_ = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketVerification))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, b []byte) error {
			n++
			return nil
		})
	})
	return n
}
