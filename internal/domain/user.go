package domain

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	ProfilePicture string      `json:"profilePicture"`
	BookingIDs     []string    `json:"bookings"`
	Preferences    Preferences `json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type Preferences struct {
	FavoriteDestinations []string `json:"favoriteDestinations"`
	Interests            []string `json:"interests"`
}

// PublicUser is the view returned by register/login responses.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
