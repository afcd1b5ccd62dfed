package model

import "time"

type Role string

const (
	RoleAnalyst    Role = "Analyst"
	RoleSupervisor Role = "Supervisor"
	RoleManager    Role = "Manager"
	RoleAdmin      Role = "Admin"
)

// User is an account as known to the remote service. Role is free-form;
// the constants above are the conventional values.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Location     string `json:"location,omitempty"`
	SubaccountID string `json:"id_subcuenta,omitempty"`
}

// IsAdmin reports whether the user may see reports and manage users
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == string(RoleAdmin)
}

// Shift is a single check-in/check-out record. The user fields are copies
// taken when the shift was created, not a live join.
type Shift struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserRole     string    `json:"userRole"`
	UserEmail    string    `json:"userEmail"`
	UserAvatar   string    `json:"userAvatar,omitempty"`
	Date         string    `json:"date"`
	EndDate      string    `json:"endDate"`
	RawDate      string    `json:"rawDate"`
	// StartAt is the parsed start instant; zero when the raw start is unreadable
	StartAt      time.Time `json:"-"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	RawEndTime   string    `json:"rawEndTime,omitempty"`
	Duration     string    `json:"duration"`
	Seconds      int64     `json:"seconds"`
	Status       string    `json:"status"`
	IsInProgress bool      `json:"isInProgress"`
	CommentStart string    `json:"comment_start,omitempty"`
	CommentEnd   string    `json:"comment_end,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	LatitudeEnd  *float64  `json:"latitude_end,omitempty"`
	LongitudeEnd *float64  `json:"longitude_end,omitempty"`
}

// HasStartLocation reports whether both start coordinates were resolved
func (s *Shift) HasStartLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// HasEndLocation reports whether both end coordinates were resolved
func (s *Shift) HasEndLocation() bool {
	return s.LatitudeEnd != nil && s.LongitudeEnd != nil
}

// ActiveSession marks an open shift so it survives restarts of the client.
// DisplayTime and DisplayDate are formatted once at check-in and kept as-is.
type ActiveSession struct {
	ISO         time.Time `json:"iso"`
	DisplayTime string    `json:"displayTime"`
	DisplayDate string    `json:"displayDate"`
}

// Location is a point acquired from the device or configuration
type Location struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// Credentials are the login inputs
type Credentials struct {
	Email        string `validate:"required,email"`
	Password     string `validate:"required"`
	SubaccountID string
}

// NewUserInput is what an administrator submits to register an account
type NewUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// UserChanges holds the editable fields of an account; empty fields are not sent
type UserChanges struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Role  string `json:"role,omitempty"`
}

// StatusFilter selects shifts by in-progress state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// IsValid reports whether the filter is a known value
func (s StatusFilter) IsValid() bool {
	return s == StatusAll || s == StatusActive || s == StatusCompleted || s == ""
}

// ReportFilter narrows a list of shifts. From and To are inclusive calendar
// days; zero values mean unbounded.
type ReportFilter struct {
	Search string
	Status StatusFilter
	From   time.Time
	To     time.Time
}
