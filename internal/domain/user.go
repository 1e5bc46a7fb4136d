package domain

// RoleRider is the only role allowed to sign in to the rider client.
const RoleRider = "Rider"

// User is the authenticated backend identity.
type User struct {
	ID          string
	FullName    string
	PhoneNumber string
	Role        string
}

// IsRider reports whether the user may use the rider client.
func (u User) IsRider() bool {
	return u.Role == RoleRider
}
