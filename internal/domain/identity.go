package domain

// Identity is the result of a successful authentication: the user's
// unique email plus display name, and whether the session should be
// persisted long-term. RememberSession is only meaningful for login.
type Identity struct {
	Email           string
	DisplayName     string
	RememberSession bool
}
