package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/middleware"
)

// parseIdParam reads a positive integer URL parameter. Anything else is
// reported as a missing entity, the way an unmatched route would be.
func parseIdParam(r *http.Request, name, what string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotFound(what)
	}
	return id, nil
}

func pageParam(r *http.Request) string {
	return r.URL.Query().Get("page")
}

// viewerId returns the id of the logged in user or nil.
func viewerId(r *http.Request) *domain.UserId {
	if user := middleware.GetUserFromContext(r); user != nil {
		return &user.Id
	}
	return nil
}

func profileURL(username domain.Username) string {
	return fmt.Sprintf("/profile/%s/", username)
}

func postURL(id domain.PostId) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// fieldErrors flattens a validation error into the map the templates index.
// Other errors are returned unchanged.
func fieldErrors(err error, into map[string]string) error {
	if err == nil {
		return nil
	}
	var v *errors.ValidationError
	if !stderrors.As(err, &v) {
		return err
	}
	for k, msg := range v.Fields {
		if _, exists := into[k]; !exists {
			into[k] = msg
		}
	}
	return nil
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}
