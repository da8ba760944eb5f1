package user

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Public is the user shape returned to clients.
type Public struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username}
}
