// Package invalid is a restdocgen fixture with a handler restdoc cannot bind.
package invalid

import "net/http"

// Counter counts.
type Counter struct{}

//restdoc:api
func (Counter) Post(w http.ResponseWriter, _ *http.Request, n int) {
	w.WriteHeader(http.StatusNoContent)
}
