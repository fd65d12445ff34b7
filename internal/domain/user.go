package domain

// RoleAdmin is the literal role marker the backend puts in a user's role list.
const RoleAdmin = "ROLE_ADMIN"

type UserProfile struct {
	ID                string   `json:"id"`
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	PhoneNumber       string   `json:"phoneNumber"`
	Address           string   `json:"address"`
	City              string   `json:"city,omitempty"`
	State             string   `json:"state,omitempty"`
	Country           string   `json:"country,omitempty"`
	ZipCode           string   `json:"zipCode,omitempty"`
	Roles             []string `json:"roles"`
	IsEmailVerified   bool     `json:"isEmailVerified"`
	IsApproved        bool     `json:"isApproved"`
	ProfileCompletion int      `json:"profileCompletion"`
	Bio               string   `json:"bio,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

func (u *UserProfile) IsAdmin() bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// DisplayName prefers the real name over the login name.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

type AuthResponse struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type Message struct {
	Message string `json:"message"`
}
