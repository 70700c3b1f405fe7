package auth

import (
	"strconv"

	"learnhub/models"
)

// AdminSubject is the token subject of the configured super admin.
const AdminSubject = "admin-static"

type Kind int

const (
	KindStoredUser Kind = iota + 1
	KindConfiguredAdmin
)

// Identity is the authenticated caller. A configured admin is built from
// configuration and has no row in the users table, so it has no UserID.
type Identity struct {
	Kind   Kind
	UserID uint
	Name   string
	Email  string
	Role   string
}

func StoredUser(u models.User) Identity {
	return Identity{Kind: KindStoredUser, UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func ConfiguredAdmin(email string) Identity {
	return Identity{Kind: KindConfiguredAdmin, Name: "Administrator", Email: email, Role: models.RoleAdmin}
}

// StudentID returns the stored user id. It is false for the configured
// admin, which can never own enrollments, progress or certificates.
func (i Identity) StudentID() (uint, bool) {
	if i.Kind != KindStoredUser {
		return 0, false
	}
	return i.UserID, true
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func (i Identity) Subject() string {
	if i.Kind == KindConfiguredAdmin {
		return AdminSubject
	}
	return strconv.FormatUint(uint64(i.UserID), 10)
}

// UserView is the public shape of an identity.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) View() UserView {
	return UserView{ID: i.Subject(), Name: i.Name, Email: i.Email, Role: i.Role}
}
