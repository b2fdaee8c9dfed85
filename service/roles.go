package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/portcullis-bot/Portcullis/common"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
)

// ChatIdentifier maps a chat ID to the stable identifier used as the bucket
// key prefix and in the HTTP API.
func ChatIdentifier(chatID int64) string {
	return common.StringToUUID5(fmt.Sprintf("%v", chatID))
}

// RoleGateway is the membership surface of the chat platform. Calls may fail
// with network or permission errors; callers treat failures as soft.
type RoleGateway interface {
	// FindRoleByName matches case-insensitively.
	FindRoleByName(ctx context.Context, chatID int64, name string) (model.Role, bool, error)
	MemberHasRole(ctx context.Context, chatID int64, userID string, role model.Role) (bool, error)
	AddRole(ctx context.Context, chatID int64, userID string, role model.Role) error
	RemoveRole(ctx context.Context, chatID int64, userID string, role model.Role) error
}

// Restrictor applies the platform-level effect of the gated role: muting the
// member while unverified and lifting the restriction once the role goes.
type Restrictor interface {
	Restrict(chatID int64, userID string) error
	Lift(chatID int64, userID string) error
}

// RoleLedger is the RoleGateway implementation. Telegram has no native roles,
// so the ledger lives in bolt and the gated role is mirrored onto the chat as
// a member restriction via the Restrictor.
type RoleLedger struct {
	restrictor Restrictor
}

// NewRoleLedger returns a ledger. restrictor may be nil; role records are
// then kept without touching chat permissions.
func NewRoleLedger(restrictor Restrictor) *RoleLedger {
	return &RoleLedger{restrictor: restrictor}
}

func roleKey(chatIdentifier, name string) []byte {
	return []byte(chatIdentifier + "/" + strings.ToLower(name))
}

func memberKey(chatIdentifier, userID string) []byte {
	return []byte(chatIdentifier + "/" + userID)
}

func (l *RoleLedger) FindRoleByName(ctx context.Context, chatID int64, name string) (role model.Role, ok bool, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketRole))
		if bkt == nil {
			return nil
		}
		b := bkt.Get(roleKey(ChatIdentifier(chatID), name))
		if b == nil {
			return nil
		}
		if err := jsoniter.Unmarshal(b, &role); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return model.Role{}, false, fmt.Errorf("FindRoleByName: %w", err)
	}
	return role, ok, nil
}

func (l *RoleLedger) MemberHasRole(ctx context.Context, chatID int64, userID string, role model.Role) (has bool, err error) {
	err = db.DB().View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketMember))
		if bkt == nil {
			return nil
		}
		b := bkt.Get(memberKey(ChatIdentifier(chatID), userID))
		if b == nil {
			return nil
		}
		var member model.Member
		if err := jsoniter.Unmarshal(b, &member); err != nil {
			return err
		}
		for _, id := range member.Roles {
			if id == role.ID {
				has = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("MemberHasRole: %w", err)
	}
	return has, nil
}

func (l *RoleLedger) AddRole(ctx context.Context, chatID int64, userID string, role model.Role) error {
	if err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketMember))
		if err != nil {
			return err
		}
		key := memberKey(ChatIdentifier(chatID), userID)
		member := model.Member{UserID: userID}
		if b := bkt.Get(key); b != nil {
			if err := jsoniter.Unmarshal(b, &member); err != nil {
				return err
			}
		}
		for _, id := range member.Roles {
			if id == role.ID {
				return nil
			}
		}
		member.Roles = append(member.Roles, role.ID)
		b, err := jsoniter.Marshal(&member)
		if err != nil {
			return err
		}
		return bkt.Put(key, b)
	}); err != nil {
		return fmt.Errorf("AddRole: %w", err)
	}
	if strings.EqualFold(role.Name, model.RoleUnverified) && l.restrictor != nil {
		if err := l.restrictor.Restrict(chatID, userID); err != nil {
			log.Warn("AddRole: restrict user %v in chat %v: %v", userID, chatID, err)
		}
	}
	return nil
}

func (l *RoleLedger) RemoveRole(ctx context.Context, chatID int64, userID string, role model.Role) error {
	if err := db.DB().Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(model.BucketMember))
		if bkt == nil {
			return nil
		}
		key := memberKey(ChatIdentifier(chatID), userID)
		b := bkt.Get(key)
		if b == nil {
			return nil
		}
		var member model.Member
		if err := jsoniter.Unmarshal(b, &member); err != nil {
			return err
		}
		roles := member.Roles[:0]
		for _, id := range member.Roles {
			if id != role.ID {
				roles = append(roles, id)
			}
		}
		member.Roles = roles
		b, err := jsoniter.Marshal(&member)
		if err != nil {
			return err
		}
		return bkt.Put(key, b)
	}); err != nil {
		return fmt.Errorf("RemoveRole: %w", err)
	}
	if strings.EqualFold(role.Name, model.RoleUnverified) && l.restrictor != nil {
		if err := l.restrictor.Lift(chatID, userID); err != nil {
			log.Warn("RemoveRole: lift restriction of user %v in chat %v: %v", userID, chatID, err)
		}
	}
	return nil
}

// EnsureRequiredRoles creates the missing entries of model.RequiredRoles for
// the chat and reports which were created and which already existed.
func (l *RoleLedger) EnsureRequiredRoles(chatIdentifier string) (created []string, existing []string, err error) {
	err = db.DB().Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(model.BucketRole))
		if err != nil {
			return err
		}
		for _, name := range model.RequiredRoles {
			key := roleKey(chatIdentifier, name)
			if bkt.Get(key) != nil {
				existing = append(existing, name)
				continue
			}
			id, err := gonanoid.New()
			if err != nil {
				return err
			}
			b, err := jsoniter.Marshal(&model.Role{ID: id, Name: name})
			if err != nil {
				return err
			}
			if err := bkt.Put(key, b); err != nil {
				return err
			}
			created = append(created, name)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("EnsureRequiredRoles: %w", err)
	}
	return created, existing, nil
}
