package models

// User represents the authenticated account as reported by the server
// after login. Only identity attributes are kept client-side.
type User struct {
	// UserID is the server-side unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name of the user. It is non-sensitive and may
	// be shown in UI.
	Name string `json:"name"`
}
