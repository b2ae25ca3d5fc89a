package models

// Address is the shipping address block of a user profile.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// User is the authenticated user's profile. The session store replaces it
// wholesale on login, profile fetch, and profile update; it is never
// partially mutated in place.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone,omitempty"`
	Role      string  `json:"role,omitempty"`
	Address   Address `json:"address"`
}

// DisplayName returns the user's first name when set, falling back to the
// email address.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// ProfileUpdate is the request payload for a profile update. Email and
// role are not editable through the client.
type ProfileUpdate struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Address   Address `json:"address"`
}
