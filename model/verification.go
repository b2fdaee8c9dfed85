package model

import (
	"time"
)

const (
	BucketVerification = "verification"

	// VerificationExpiration is measured from issuance. Expiry is checked by
	// the periodic sweep only, never on read.
	VerificationExpiration = 5 * time.Minute
)

// PendingVerification is the record of an issued, unresolved challenge for
// one user. At most one exists per user; re-issuing overwrites it and the
// prior challenge can no longer be completed.
type PendingVerification struct {
	UserID      string
	ChatID      int64
	ChallengeID string
	TargetName  string
	IssuedAt    time.Time
}

func (v *PendingVerification) Expired(now time.Time) bool {
	return now.Sub(v.IssuedAt) > VerificationExpiration
}
