package webhook

import (
	"strings"

	"github.com/cha0jun/leavey/internal/domain"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
)

type IdentityEvent struct {
	Type string       `json:"type"`
	Data IdentityUser `json:"data"`
}

type IdentityEmail struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type IdentityUser struct {
	ID                    string          `json:"id"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	PrimaryEmailAddressID string          `json:"primary_email_address_id"`
	EmailAddresses        []IdentityEmail `json:"email_addresses"`
}

type AckResponse struct {
	Status string `json:"status"`
	Event  string `json:"event"`
	UserID string `json:"user_id,omitempty"`
}

// Identity picks the primary email, falling back to the first listed.
func (u IdentityUser) Identity() domain.Identity {
	email := ""
	for _, e := range u.EmailAddresses {
		if e.ID != "" && e.ID == u.PrimaryEmailAddressID {
			email = e.EmailAddress
			break
		}
	}
	if email == "" && len(u.EmailAddresses) > 0 {
		email = u.EmailAddresses[0].EmailAddress
	}
	return domain.Identity{
		Subject: strings.TrimSpace(u.ID),
		Email:   strings.TrimSpace(email),
		Name:    strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName)),
	}
}
