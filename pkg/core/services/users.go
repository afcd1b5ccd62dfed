package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/normalize"
	"github.com/jakechorley/shifttrack/pkg/metrics"
	"github.com/jakechorley/shifttrack/pkg/session"
)

// FetchUsers lists the accounts of the current subaccount. Any failure is
// logged and yields an empty list.
func FetchUsers(ctx context.Context, client WebhookPoster, sess *session.Session, m *metrics.WebhookMetrics, logger *zap.Logger) []model.User {
	var userID, email, role string
	if u := sess.User(); u != nil {
		userID, email, role = u.ID, u.Email, u.Role
	}
	subaccount := sess.SubaccountID()

	resp, err := client.Post(ctx, webhookclient.Users, map[string]any{
		"request":      "get_all_users",
		"id_subcuenta": subaccount,
		"user_id":      userID,
		"email":        email,
		"role":         role,
	})
	if err != nil {
		logger.Warn("Failed to fetch users", zap.Error(err))
		m.ReadFailure(string(webhookclient.Users))
		return []model.User{}
	}

	users := normalize.ToListedUsers(normalize.NormalizeList(resp.Body), subaccount)
	logger.Debug("Fetched users", zap.Int("count", len(users)))
	return users
}

// FindUser returns the user whose id or email matches key
func FindUser(users []model.User, key string) (*model.User, bool) {
	for i := range users {
		if users[i].ID == key || users[i].Email == key {
			return &users[i], true
		}
	}
	return nil, false
}

// RealEmail returns the account's email, or "" when the list entry had none
// and a placeholder was filled in
func RealEmail(u model.User) string {
	if normalize.IsPlaceholderEmail(u.Email) {
		return ""
	}
	return u.Email
}

// DeleteUser asks the remote to remove target. The result reflects only the
// HTTP status of the call.
func DeleteUser(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger, target model.User) bool {
	requesterID, requesterEmail := requester(sess)

	payload := map[string]any{
		"id":              target.ID,
		"name":            target.Name,
		"email":           RealEmail(target),
		"role":            target.Role,
		"avatar":          target.Avatar,
		"action":          "delete",
		"id_subcuenta":    sess.SubaccountID(),
		"requester_id":    requesterID,
		"requester_email": requesterEmail,
	}
	if target.Phone != "" {
		payload["phone"] = target.Phone
	}

	resp, err := client.Post(ctx, webhookclient.DeleteUser, payload)
	if resp == nil {
		logger.Warn("Delete user request failed", zap.String("user_id", target.ID), zap.Error(err))
		return false
	}
	if !resp.OK {
		logger.Warn("Delete user rejected", zap.String("user_id", target.ID), zap.Int("status", resp.StatusCode))
		return false
	}

	logger.Info("Deleted user", zap.String("user_id", target.ID))
	return true
}

// UpdateUser sends the changed fields of target. Empty fields in changes are
// left out. The result reflects only the HTTP status of the call.
func UpdateUser(ctx context.Context, client WebhookPoster, sess *session.Session, logger *zap.Logger, target model.User, changes model.UserChanges) (bool, error) {
	if err := validate.Struct(changes); err != nil {
		return false, fmt.Errorf("invalid changes: %w", err)
	}

	requesterID, requesterEmail := requester(sess)

	payload := map[string]any{
		"id":      target.ID,
		"user_id": target.ID,
	}
	if changes.Name != "" {
		payload["name"] = changes.Name
	}
	if changes.Email != "" {
		payload["email"] = changes.Email
	}
	if changes.Role != "" {
		payload["role"] = changes.Role
	}
	payload["id_subcuenta"] = sess.SubaccountID()
	payload["requester_id"] = requesterID
	payload["requester_email"] = requesterEmail

	resp, err := client.Post(ctx, webhookclient.EditUser, payload)
	if resp == nil {
		logger.Warn("Edit user request failed", zap.String("user_id", target.ID), zap.Error(err))
		return false, nil
	}
	if !resp.OK {
		logger.Warn("Edit user rejected", zap.String("user_id", target.ID), zap.Int("status", resp.StatusCode))
		return false, nil
	}

	logger.Info("Updated user", zap.String("user_id", target.ID))
	return true, nil
}
