package main

import (
	"time"

	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	"github.com/portcullis-bot/Portcullis/service"
)

func GoBackgrounds(store service.VerificationStore) {
	// remove expired pending verifications. The cadence equals the expiration
	// threshold, so a stale record lives at most twice the threshold.
	go SweepVerificationsBackground(store, model.VerificationExpiration)()
}

// SweepVerificationsBackground removes expired pending verifications at a
// fixed interval, so challenges abandoned mid-flow do not accumulate.
func SweepVerificationsBackground(store service.VerificationStore, sweepInterval time.Duration) func() {
	return func() {
		tick := time.Tick(sweepInterval)
		for now := range tick {
			if removed := store.SweepExpired(now); len(removed) > 0 {
				log.Info("swept %v expired verifications: %v", len(removed), removed)
			}
		}
	}
}
