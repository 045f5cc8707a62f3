package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserType string

const (
	UserMember UserType = "member"
	UserCasual UserType = "casual"
)

type MembershipTier string

const (
	TierBasic   MembershipTier = "basic"
	TierPremium MembershipTier = "premium"
)

// User is implemented by every rider variant. Trips hold User values,
// so one rider is shared by every trip they took.
type User interface {
	UserID() string
	UserType() UserType
	UserEmail() string
}

// BaseUser carries the fields common to both variants. Placeholder
// riders created while linking trips are BaseUser values with
// synthesized name and email.
type BaseUser struct {
	ID        string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      UserType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(id, name, email string, userType UserType) (*BaseUser, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: user_id", ErrMissingID)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	switch userType {
	case UserMember, UserCasual:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidUserType, userType)
	}
	return &BaseUser{
		ID:        id,
		Name:      name,
		Email:     email,
		Type:      userType,
		CreatedAt: time.Now(),
	}, nil
}

func (u *BaseUser) UserID() string     { return u.ID }
func (u *BaseUser) UserType() UserType { return u.Type }
func (u *BaseUser) UserEmail() string  { return u.Email }

type CasualUser struct {
	BaseUser
	DayPassCount int `json:"day_pass_count"`
}

func NewCasualUser(id, name, email string, dayPassCount int) (*CasualUser, error) {
	if dayPassCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayPassCount, dayPassCount)
	}
	base, err := NewUser(id, name, email, UserCasual)
	if err != nil {
		return nil, err
	}
	return &CasualUser{BaseUser: *base, DayPassCount: dayPassCount}, nil
}

type MemberUser struct {
	BaseUser
	Tier            MembershipTier `json:"tier"`
	MembershipStart time.Time      `json:"membership_start"`
	MembershipEnd   time.Time      `json:"membership_end"`
}

func NewMemberUser(id, name, email string, tier MembershipTier, start, end time.Time) (*MemberUser, error) {
	switch tier {
	case TierBasic, TierPremium:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidMembershipPeriod, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	base, err := NewUser(id, name, email, UserMember)
	if err != nil {
		return nil, err
	}
	return &MemberUser{BaseUser: *base, Tier: tier, MembershipStart: start, MembershipEnd: end}, nil
}
