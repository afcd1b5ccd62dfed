// Package services sequences webhook calls and session updates for each
// user-facing operation. Every flow runs its steps one after another.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoUserData         = errors.New("no user data returned after login")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNoActiveShift      = errors.New("no shift in progress")
	ErrShiftAlreadyActive = errors.New("a shift is already in progress")
	ErrForbidden          = errors.New("this operation requires the Admin role")
)

// WebhookPoster is the part of the webhook client the flows need
type WebhookPoster interface {
	Post(ctx context.Context, endpoint webhookclient.Endpoint, body any) (*webhookclient.Response, error)
}

// isoLayout matches JavaScript's Date.prototype.toISOString
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func toISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

var validate = validator.New()

// requester returns the id and email of the signed-in user, or empty strings
func requester(sess *session.Session) (id, email string) {
	if u := sess.User(); u != nil {
		return u.ID, u.Email
	}
	return "", ""
}

// RequireAdmin fails unless the signed-in user has the Admin role
func RequireAdmin(sess *session.Session) (*model.User, error) {
	user := sess.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}

// bodyMap returns the response body when it is a JSON object
func bodyMap(resp *webhookclient.Response) map[string]any {
	if resp == nil {
		return nil
	}
	m, _ := resp.Body.(map[string]any)
	return m
}
