package normalize

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const avatarURLTemplate = "https://ui-avatars.com/api/?name=%s&background=random"

var (
	shiftNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("shifttrack:shift"))
	userNamespace  = uuid.NewSHA1(uuid.NameSpaceURL, []byte("shifttrack:user"))
)

// synthesizeShiftID derives an id from the record content, so the same
// upstream row gets the same id on every fetch
func synthesizeShiftID(rec Record) string {
	// map keys are marshalled in sorted order
	data, err := json.Marshal(rec)
	if err != nil {
		data = []byte(toString(rec))
	}
	return uuid.NewSHA1(shiftNamespace, data).String()
}

// synthesizeUserID derives an id from an email address
func synthesizeUserID(email string) string {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(strings.TrimSpace(email)))).String()
}

// AvatarURL builds the generated-avatar address for a display name
func AvatarURL(name string) string {
	return fmt.Sprintf(avatarURLTemplate, encodeURIComponent(name))
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
