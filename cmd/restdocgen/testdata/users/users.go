// Package users is a restdocgen fixture.
package users

import (
	"net/http"
	"net/url"
)

// Users serves user accounts.
type Users struct {
	names map[string]string
}

// Get fetches a user.
//
// @param user_id the user id
// @rtype User
// @raise NotFound no user with that id
//
//restdoc:api Fetch one user
func (u *Users) Get(w http.ResponseWriter, _ *http.Request, userID string) error {
	name, ok := u.names[userID]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	_, err := w.Write([]byte(name))
	return err
}

// Put renames a user.
//
// @param name the new name
//
//restdoc:api
func (u *Users) Put(w http.ResponseWriter, _ *http.Request, userID string, form url.Values) {
	u.names[userID] = form.Get("name")
	w.WriteHeader(http.StatusNoContent)
}

// Delete is not documented.
func (u *Users) Delete(w http.ResponseWriter, _ *http.Request, _ string) {
	w.WriteHeader(http.StatusNoContent)
}

// Files lists stored files.
type Files struct{}

//restdoc:api List files below a directory
func (Files) Get(w http.ResponseWriter, _ *http.Request, parts ...string) {
	w.WriteHeader(http.StatusOK)
}
