package interfaces

import "net/http"

// Renderer writes a named HTML view with the given status.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data map[string]interface{}) error
}
