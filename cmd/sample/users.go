package main

//go:generate go run github.com/bjaus/restdoc/cmd/restdocgen

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bjaus/restdoc"
)

var (
	listUsers = restdoc.Declare(
		restdoc.WithSummary("List users"),
		restdoc.WithDoc(`Returns all users ordered by id.

@param role only users with this role
@rtype []User`),
	)

	createUser = restdoc.Declare(
		restdoc.WithFormArguments("name", "email"),
		restdoc.WithDoc(`Create a user.

@param name display name
@param email contact address
@param role access role, "member" when left out
@rtype User
@raise BadRequest name or email missing`),
	)
)

// Users serves the user collection.
type Users struct {
	store *userStore
}

// Resource returns the documented resource of the collection.
func (u *Users) Resource() *restdoc.Resource {
	return restdoc.NewResource("User accounts.",
		listUsers.MustBind("get", u.List),
		createUser.MustBind("post", u.Create),
	)
}

func (u *Users) List(w http.ResponseWriter, _ *http.Request, query url.Values) error {
	return writeJSON(w, http.StatusOK, u.store.list(query.Get("role")))
}

func (u *Users) Create(w http.ResponseWriter, _ *http.Request, form url.Values) error {
	name, email := form.Get("name"), form.Get("email")
	if name == "" || email == "" {
		return restdoc.Error(http.StatusBadRequest, "name and email are required")
	}
	role := form.Get("role")
	if role == "" {
		role = "member"
	}
	return writeJSON(w, http.StatusCreated, u.store.create(name, email, role))
}

// UserByID serves a single user account.
type UserByID struct {
	store *userStore
}

// Get fetches a user.
//
// @param user_id the user id
// @rtype User
// @raise NotFound no user with that id
//
//restdoc:api Get user
func (u *UserByID) Get(w http.ResponseWriter, _ *http.Request, userID string) error {
	user, ok := u.store.get(userID)
	if !ok {
		return restdoc.Errorf(http.StatusNotFound, "user %s not found", userID)
	}
	return writeJSON(w, http.StatusOK, user)
}

// Put updates the given fields of a user.
//
// @param user_id the user id
// @param name new display name
// @param email new contact address
// @rtype User
// @raise NotFound no user with that id
//
//restdoc:api Update user
func (u *UserByID) Put(w http.ResponseWriter, _ *http.Request, userID string, form url.Values) error {
	user, ok := u.store.update(userID, form.Get("name"), form.Get("email"))
	if !ok {
		return restdoc.Errorf(http.StatusNotFound, "user %s not found", userID)
	}
	return writeJSON(w, http.StatusOK, user)
}

// Delete removes a user.
//
// @param user_id the user id
// @raise NotFound no user with that id
//
//restdoc:api Delete user
func (u *UserByID) Delete(w http.ResponseWriter, _ *http.Request, userID string) error {
	if !u.store.delete(userID) {
		return restdoc.Errorf(http.StatusNotFound, "user %s not found", userID)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
