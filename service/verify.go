package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
)

// AttributeRoles are the exclusive options offered after a passed challenge.
var AttributeRoles = []string{model.RoleMale, model.RoleFemale}

// Reply is what a verification step sends back to the interacting user. At
// most one of Challenge and Attributes is set.
type Reply struct {
	Text       string
	Challenge  *model.Challenge
	Attributes []string
}

// EventSink receives best-effort audit events from the verification flow.
type EventSink interface {
	Record(chatID int64, userID string, title string)
}

// Verifier drives a user from gated to verified: challenge issuance, answer
// validation and the final role mutations. It talks to the chat platform only
// through RoleGateway, and to persistence only through VerificationStore.
type Verifier struct {
	gen    *ChallengeGenerator
	store  VerificationStore
	roles  RoleGateway
	events EventSink
	now    func() time.Time
}

// NewVerifier assembles the state machine. events may be nil.
func NewVerifier(gen *ChallengeGenerator, store VerificationStore, roles RoleGateway, events EventSink) *Verifier {
	return &Verifier{gen: gen, store: store, roles: roles, events: events, now: time.Now}
}

func (v *Verifier) record(chatID int64, userID string, title string) {
	if v.events == nil {
		return
	}
	v.events.Record(chatID, userID, title)
}

// RequestChallenge issues a fresh challenge for the user. Requesting again
// while one is pending simply replaces it; the old challenge can no longer
// pass. Users without the unverified role get an informational reply and no
// challenge.
func (v *Verifier) RequestChallenge(ctx context.Context, chatID int64, userID string) (Reply, error) {
	role, ok, err := v.roles.FindRoleByName(ctx, chatID, model.RoleUnverified)
	if err != nil {
		return Reply{}, fmt.Errorf("RequestChallenge: %w", err)
	}
	if ok {
		has, err := v.roles.MemberHasRole(ctx, chatID, userID, role)
		if err != nil {
			return Reply{}, fmt.Errorf("RequestChallenge: %w", err)
		}
		ok = has
	}
	if !ok {
		return Reply{Text: "You are already verified or don't need verification."}, nil
	}
	challenge, err := v.gen.Generate()
	if err != nil {
		return Reply{}, fmt.Errorf("RequestChallenge: %w", err)
	}
	if err := v.store.Issue(userID, model.PendingVerification{
		UserID:      userID,
		ChatID:      chatID,
		ChallengeID: challenge.ID,
		TargetName:  challenge.Target.Name,
		IssuedAt:    v.now(),
	}); err != nil {
		return Reply{}, fmt.Errorf("RequestChallenge: %w", err)
	}
	v.record(chatID, userID, "challenge issued")
	return Reply{
		Text:      fmt.Sprintf("press the %v %v button below to prove you are human.", challenge.Target.Name, challenge.Target.Emoji),
		Challenge: &challenge,
	}, nil
}

// AnswerChallenge validates a pressed option against the user's pending
// challenge. The challenge is single-use: it is resolved before the outcome
// is acted on, so neither a pass nor a failure can be replayed.
func (v *Verifier) AnswerChallenge(ctx context.Context, chatID int64, userID string, challengeID string, selectedName string) (Reply, error) {
	pending, ok := v.store.Get(userID)
	if !ok || pending.ChallengeID != challengeID {
		return Reply{Text: "this verification session has expired. Press Verify to start over."}, nil
	}
	if err := v.store.Resolve(userID); err != nil {
		return Reply{}, fmt.Errorf("AnswerChallenge: %w", err)
	}
	if selectedName != pending.TargetName {
		v.record(chatID, userID, "challenge failed")
		return Reply{Text: "that was not the right icon. Press Verify to get a new challenge."}, nil
	}
	v.record(chatID, userID, "challenge passed")
	return Reply{
		Text:       "correct! Now select your gender:",
		Attributes: AttributeRoles,
	}, nil
}

// SelectAttribute finishes verification. The three role mutations are
// independently best-effort: a missing role or a failed call never aborts the
// transition, the user always ends up verified.
func (v *Verifier) SelectAttribute(ctx context.Context, chatID int64, userID string, attribute string) (Reply, error) {
	valid := false
	for _, a := range AttributeRoles {
		if attribute == a {
			valid = true
			break
		}
	}
	if !valid {
		return Reply{Text: "unknown selection. Please use the menu."}, nil
	}
	if role, ok, err := v.roles.FindRoleByName(ctx, chatID, model.RoleUnverified); err != nil {
		log.Warn("SelectAttribute: find role %v: %v", model.RoleUnverified, err)
	} else if ok {
		if has, err := v.roles.MemberHasRole(ctx, chatID, userID, role); err != nil {
			log.Warn("SelectAttribute: %v", err)
		} else if has {
			if err := v.roles.RemoveRole(ctx, chatID, userID, role); err != nil {
				log.Warn("SelectAttribute: remove role %v: %v", model.RoleUnverified, err)
			}
		}
	}
	if role, ok, err := v.roles.FindRoleByName(ctx, chatID, model.RoleVerified); err != nil {
		log.Warn("SelectAttribute: find role %v: %v", model.RoleVerified, err)
	} else if !ok {
		log.Warn("SelectAttribute: role %v not found in chat %v", model.RoleVerified, chatID)
	} else if err := v.roles.AddRole(ctx, chatID, userID, role); err != nil {
		log.Warn("SelectAttribute: add role %v: %v", model.RoleVerified, err)
	}
	text := fmt.Sprintf("verification complete! You have been assigned the %v role.", attribute)
	role, ok, err := v.roles.FindRoleByName(ctx, chatID, attribute)
	if err != nil {
		log.Warn("SelectAttribute: find role %v: %v", attribute, err)
		ok = false
	}
	if ok {
		if err := v.roles.AddRole(ctx, chatID, userID, role); err != nil {
			log.Warn("SelectAttribute: add role %v: %v", attribute, err)
			ok = false
		}
	}
	if !ok {
		text = fmt.Sprintf("verification complete! However, the %v role could not be assigned. Please contact an administrator.", attribute)
	}
	v.record(chatID, userID, "verified")
	return Reply{Text: text}, nil
}
