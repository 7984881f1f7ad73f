// fightclub/auth/authz.go
package auth

import "fightclub/models"

// CanModify reports whether the requester may edit or delete a resource owned
// by authorID. Pure function of identity and ownership: no hidden state.
func CanModify(requester *models.User, authorID int64) bool {
	if requester == nil {
		return false
	}
	return requester.ID == authorID || requester.IsAdmin()
}

// RequireAdmin reports whether the requester holds the admin role.
func RequireAdmin(requester *models.User) bool {
	return requester != nil && requester.IsAdmin()
}
