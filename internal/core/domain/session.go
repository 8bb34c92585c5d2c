package domain

// Session is the authenticated-identity + token pair held for the duration
// of a login. Durable storage is the single source of truth: a token present
// in storage is what makes the console authenticated.
type Session struct {
	Token string  `json:"token"`
	User  Usuario `json:"user"`
}
