package types

// Session is the per-browser state. It is passed explicitly to handlers,
// which return an updated copy instead of mutating shared state.
type Session struct {
	ID       string      `json:"id"`
	LoggedIn bool        `json:"logged_in"`
	Username string      `json:"username"`
	History  []Exchange  `json:"history"`
	Context  UserContext `json:"context"`
}

// NewSession returns a logged-out session with default sidebar values.
func NewSession(id string) Session {
	return Session{ID: id, Context: DefaultUserContext()}
}

// IsAuthenticated reports whether the gated views may be shown.
func (s Session) IsAuthenticated() bool {
	return s.LoggedIn && s.Username != ""
}

// Login marks the session as authenticated for username.
func (s Session) Login(username string) Session {
	s.LoggedIn = true
	s.Username = username
	return s
}

// Logout clears authentication and everything tied to the previous user.
func (s Session) Logout() Session {
	return NewSession(s.ID)
}

// WithExchange returns a copy with one more history entry. The backing array
// is never shared with the receiver, so earlier copies stay unchanged.
func (s Session) WithExchange(query, answer string) Session {
	history := make([]Exchange, len(s.History), len(s.History)+1)
	copy(history, s.History)
	s.History = append(history, Exchange{Query: query, Answer: answer})
	return s
}
