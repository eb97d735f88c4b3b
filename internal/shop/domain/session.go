package domain

// SessionState is the two-state gate controlling access to the shopping
// flow. LoggedOut -> LoggedIn on successful login, LoggedIn -> LoggedOut on
// logout or reset; there are no other transitions.
type SessionState string

const (
	SessionLoggedOut SessionState = "logged_out"
	SessionLoggedIn  SessionState = "logged_in"
)
