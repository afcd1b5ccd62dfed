package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/normalize"
	"github.com/jakechorley/shifttrack/pkg/session"
)

// Login authenticates against the login webhook and stores the resulting user
func Login(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger, creds model.Credentials) (*model.User, error) {
	logger.Debug("Starting login", zap.String("email", creds.Email))

	if err := validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid login input: %w", err)
	}

	resp, err := client.Post(ctx, webhookclient.Login, map[string]any{
		"email":        creds.Email,
		"password":     creds.Password,
		"id_subcuenta": creds.SubaccountID,
	})
	var statusErr *webhookclient.StatusError
	if err != nil && !errors.As(err, &statusErr) {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	if obj := bodyMap(resp); obj != nil {
		if status, _ := obj["status"].(string); status == "error" || obj["error"] == true {
			if msg, _ := obj["message"].(string); msg != "" {
				return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
			}
			return nil, ErrInvalidCredentials
		}
	}
	if statusErr != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	records := normalize.NormalizeList(resp.Body)
	if len(records) == 0 {
		return nil, ErrNoUserData
	}

	user := normalize.ToLoginUser(records[0], creds)
	if err := sess.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return &user, nil
}

// Logout forgets the stored user and any open shift marker
func Logout(ctx context.Context, sess *session.Session, logger *zap.Logger) error {
	if err := sess.Clear(ctx); err != nil {
		return err
	}
	logger.Debug("Session cleared")
	return nil
}

// Register creates an account through the registration webhook. The new
// user becomes the current user only when nobody is signed in.
func Register(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger, input model.NewUserInput) (*model.User, error) {
	logger.Debug("Starting register", zap.String("email", input.Email))

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	requesterID, requesterEmail := requester(sess)
	subaccount := sess.SubaccountID()

	payload := map[string]any{
		"name":            input.Name,
		"email":           input.Email,
		"password":        input.Password,
		"role":            input.Role,
		"id_subcuenta":    subaccount,
		"requester_email": requesterEmail,
		"requester_id":    requesterID,
	}
	if input.Phone != "" {
		payload["phone"] = input.Phone
	}

	resp, err := client.Post(ctx, webhookclient.Register, payload)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	rec := normalize.First(resp.Body)
	if rec == nil {
		rec = normalize.Record(bodyMap(resp))
	}
	user := normalize.ToRegisteredUser(rec, input, subaccount)

	if sess.User() == nil {
		if err := sess.SaveUser(ctx, user); err != nil {
			return nil, err
		}
		logger.Debug("Registered user stored as current user")
	}

	logger.Info("Registered user", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return &user, nil
}

// FetchProfile looks up the stored details for email. Any failure yields an
// empty profile.
func FetchProfile(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger, email string) model.User {
	resp, err := client.Post(ctx, webhookclient.Profile, map[string]any{
		"email":        email,
		"id_subcuenta": sess.SubaccountID(),
	})
	if err != nil {
		logger.Warn("Failed to fetch profile", zap.String("email", email), zap.Error(err))
		return model.User{}
	}

	rec := normalize.First(resp.Body)
	if rec == nil {
		rec = normalize.Record(bodyMap(resp))
	}
	return normalize.ToProfile(rec, email)
}

// RepairSession fills in a missing subaccount on the stored user from their
// profile. It returns the user as stored afterwards, or nil when signed out.
func RepairSession(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger) (*model.User, error) {
	user := sess.User()
	if user == nil || user.SubaccountID != "" || user.Email == "" {
		return user, nil
	}

	logger.Debug("Stored user has no subaccount, loading profile", zap.String("email", user.Email))
	profile := FetchProfile(ctx, client, sess, logger, user.Email)
	if profile.SubaccountID == "" {
		return user, nil
	}

	user.SubaccountID = profile.SubaccountID
	if err := sess.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	logger.Info("Restored subaccount from profile", zap.String("id_subcuenta", user.SubaccountID))
	return user, nil
}
