package model

// User is a registered account. Only the bcrypt hash of the password is kept.
type User struct {
	Username     Username `json:"username"`
	PasswordHash string   `json:"passwordHash"`
	IsAdmin      bool     `json:"isAdmin"`
}

// UserInfo is the public view of a User.
type UserInfo struct {
	Username Username `json:"username"`
	IsAdmin  bool     `json:"isAdmin"`
}

// Session is the process-wide record of the logged-in user.
type Session struct {
	IsAuthenticated bool     `json:"isAuthenticated"`
	IsAdmin         bool     `json:"isAdmin"`
	Username        Username `json:"username,omitempty"`
}
