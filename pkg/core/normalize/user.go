package normalize

import (
	"fmt"
	"strings"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

const (
	defaultLoginRole    = "User"
	defaultListRole     = string(model.RoleAnalyst)
	defaultRegisterName = "Usuario"
	defaultAvatarName   = "User"
	placeholderDomain   = "users.invalid"
)

// ToLoginUser maps the record returned by the login endpoint. Missing values
// fall back to the submitted credentials; a missing id is derived from the
// email so it is the same on every login.
func ToLoginUser(rec Record, creds model.Credentials) model.User {
	f := userFields

	email := f.Email.str(rec, creds.Email)
	localPart, _, _ := strings.Cut(creds.Email, "@")

	user := model.User{
		ID:           f.ID.str(rec, ""),
		Name:         f.Name.str(rec, localPart),
		Email:        email,
		Role:         f.Role.str(rec, defaultLoginRole),
		Avatar:       AvatarURL(truthy("nombre", "name").str(rec, defaultAvatarName)),
		SubaccountID: f.Subaccount.str(rec, creds.SubaccountID),
	}
	if user.ID == "" {
		user.ID = synthesizeUserID(email)
	}
	return user
}

// ToRegisteredUser maps the record echoed by the registration endpoint,
// falling back to what was submitted
func ToRegisteredUser(rec Record, input model.NewUserInput, fallbackSubaccount string) model.User {
	f := userFields

	email := f.Email.str(rec, input.Email)
	role := f.Role.str(rec, input.Role)
	if role == "" {
		role = defaultLoginRole
	}
	name := f.Name.str(rec, input.Name)
	if name == "" {
		name = defaultRegisterName
	}

	avatarName := truthy("nombre").str(rec, input.Name)
	if avatarName == "" {
		avatarName = defaultAvatarName
	}

	user := model.User{
		ID:           f.ID.str(rec, ""),
		Name:         name,
		Email:        email,
		Role:         role,
		Avatar:       AvatarURL(avatarName),
		Phone:        f.Phone.str(rec, input.Phone),
		SubaccountID: f.ListSubaccount.str(rec, fallbackSubaccount),
	}
	if user.ID == "" {
		user.ID = synthesizeUserID(email)
	}
	return user
}

// ToListedUser maps one entry of the user list. index is the entry's position
// and is used to synthesise an id, name and email where they are missing.
func ToListedUser(rec Record, index int, fallbackSubaccount string) model.User {
	f := userFields

	name := f.ListName.str(rec, fmt.Sprintf("Usuario %d", index+1))
	id := f.ID.str(rec, fmt.Sprintf("u-%d", index))

	return model.User{
		ID:           id,
		Name:         name,
		Email:        f.Email.str(rec, id+"@"+placeholderDomain),
		Role:         f.Role.str(rec, defaultListRole),
		Avatar:       AvatarURL(name),
		Phone:        f.Phone.str(rec, ""),
		SubaccountID: f.ListSubaccount.str(rec, fallbackSubaccount),
	}
}

// ToListedUsers maps every record, preserving order
func ToListedUsers(records []Record, fallbackSubaccount string) []model.User {
	users := make([]model.User, 0, len(records))
	for i, rec := range records {
		users = append(users, ToListedUser(rec, i, fallbackSubaccount))
	}
	return users
}

// ToProfile maps a profile record. The result is partial: fields the record
// does not carry are left empty, except Email which falls back to the email
// that was looked up.
func ToProfile(rec Record, email string) model.User {
	f := userFields
	return model.User{
		ID:           f.ID.str(rec, ""),
		Name:         f.Name.str(rec, ""),
		Email:        f.Email.str(rec, email),
		Role:         f.Role.str(rec, ""),
		Avatar:       f.Avatar.str(rec, ""),
		Phone:        f.Phone.str(rec, ""),
		SubaccountID: f.Subaccount.str(rec, ""),
	}
}

// IsPlaceholderEmail reports whether an email was synthesised by ToListedUser
func IsPlaceholderEmail(email string) bool {
	return strings.HasSuffix(email, "@"+placeholderDomain)
}
