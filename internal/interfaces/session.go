package interfaces

import "net/http"

// SessionManager binds a client to an authenticated username and carries
// one-shot flash messages between requests.
type SessionManager interface {
	Start(w http.ResponseWriter, r *http.Request, username string) error
	// Current returns the session's username, or "" and false when there is none.
	Current(r *http.Request) (string, bool)
	// End clears the session. Ending an absent session is not an error.
	End(w http.ResponseWriter, r *http.Request)
	AddFlash(w http.ResponseWriter, r *http.Request, message string) error
	// Flashes returns and discards the queued messages.
	Flashes(w http.ResponseWriter, r *http.Request) []string
}
