package api

// Session carries the caller's identity into every upstream call.
// It is passed explicitly; nothing in the client reads ambient state.
type Session struct {
	Token  string
	UserID string
}

// Authorization returns the header value for the session, or "" without a token.
// Requests are still sent without a token and rejected upstream if required.
func (s Session) Authorization(scheme string) string {
	if s.Token == "" {
		return ""
	}
	return scheme + s.Token
}
