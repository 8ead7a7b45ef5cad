// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
)

const (
	MaxUsernameLen = 36
	MaxEmailLen    = 254
	MaxBioLen      = 280
	MaxAvatarLen   = 256
	MaxVariantLen  = 32
	MaxBadges      = 12
	MaxBadgeLen    = 24

	// MaxProfileBytes bounds the encoded profile so it still fits a session cookie.
	MaxProfileBytes = 2048
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrFieldTooLong    = errors.New("field too long")
	ErrProfileTooLarge = errors.New("profile too large")
)

type UserID string

type Status string

const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusBusy    Status = "busy"
	StatusOffline Status = "offline"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusAway, StatusBusy, StatusOffline:
		return true
	}
	return false
}

type UserStats struct {
	RoomsJoined   int `json:"roomsJoined"`
	RoomsCreated  int `json:"roomsCreated"`
	MinutesSpoken int `json:"minutesSpoken"`
	Followers     int `json:"followers"`
	Following     int `json:"following"`
}

type User struct {
	ID               UserID    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Bio              string    `json:"bio"`
	Avatar           string    `json:"avatar"`
	AvatarVariant    string    `json:"avatarVariant"`
	AnimationVariant string    `json:"animationVariant"`
	Level            int       `json:"level"`
	Badges           []string  `json:"badges"`
	Status           Status    `json:"status"`
	Stats            UserStats `json:"stats"`
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	if u.Badges != nil {
		u.Badges = append([]string(nil), u.Badges...)
	}
	return u
}

// UserPatch is a partial User. Nil fields are left untouched by Apply.
// ID is absent on purpose: it never changes after creation.
type UserPatch struct {
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Bio              *string    `json:"bio,omitempty"`
	Avatar           *string    `json:"avatar,omitempty"`
	AvatarVariant    *string    `json:"avatarVariant,omitempty"`
	AnimationVariant *string    `json:"animationVariant,omitempty"`
	Level            *int       `json:"level,omitempty"`
	Badges           []string   `json:"badges,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	Stats            *UserStats `json:"stats,omitempty"`
}

func (p UserPatch) Validate() error {
	if p.Name != nil {
		if len(*p.Name) == 0 {
			return ErrUsernameEmpty
		}
		if len(*p.Name) > MaxUsernameLen {
			return ErrUsernameTooLong
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	for _, f := range []struct {
		name string
		v    *string
		max  int
	}{
		{"email", p.Email, MaxEmailLen},
		{"bio", p.Bio, MaxBioLen},
		{"avatar", p.Avatar, MaxAvatarLen},
		{"avatarVariant", p.AvatarVariant, MaxVariantLen},
		{"animationVariant", p.AnimationVariant, MaxVariantLen},
	} {
		if f.v != nil && len(*f.v) > f.max {
			return fmt.Errorf("%w: %s", ErrFieldTooLong, f.name)
		}
	}
	if len(p.Badges) > MaxBadges {
		return fmt.Errorf("%w: badges", ErrFieldTooLong)
	}
	for _, b := range p.Badges {
		if len(b) > MaxBadgeLen {
			return fmt.Errorf("%w: badge", ErrFieldTooLong)
		}
	}
	return nil
}

// Apply merges the set fields of p into a copy of u.
func (p UserPatch) Apply(u User) User {
	out := u.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Bio != nil {
		out.Bio = *p.Bio
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.AvatarVariant != nil {
		out.AvatarVariant = *p.AvatarVariant
	}
	if p.AnimationVariant != nil {
		out.AnimationVariant = *p.AnimationVariant
	}
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.Badges != nil {
		out.Badges = append([]string(nil), p.Badges...)
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Stats != nil {
		out.Stats = *p.Stats
	}
	return out
}

// DefaultUser is the profile served until something else is stored.
func DefaultUser() User {
	return User{
		ID:               "user-1",
		Name:             "Alex Morgan",
		Email:            "alex@nexvox.io",
		Bio:              "Voice chat enthusiast and late-night DJ.",
		Avatar:           "/avatars/user-1.png",
		AvatarVariant:    "gradient",
		AnimationVariant: "pulse",
		Level:            12,
		Badges:           []string{"early-adopter", "top-speaker"},
		Status:           StatusOnline,
		Stats: UserStats{
			RoomsJoined:   48,
			RoomsCreated:  6,
			MinutesSpoken: 1320,
			Followers:     215,
			Following:     180,
		},
	}
}
