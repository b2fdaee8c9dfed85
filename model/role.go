package model

const (
	BucketRole   = "role"
	BucketMember = "member"
)

const (
	RoleUnverified = "unverified"
	RoleVerified   = "verified"
	RoleMale       = "male"
	RoleFemale     = "female"
)

// RequiredRoles is the role set the verification flow expects in every gated
// chat. Lookups are case-insensitive.
var RequiredRoles = []string{RoleUnverified, RoleVerified, RoleMale, RoleFemale}

type Role struct {
	ID   string
	Name string
}

// Member records which roles a chat member holds, by role ID.
type Member struct {
	UserID string
	Roles  []string
}
