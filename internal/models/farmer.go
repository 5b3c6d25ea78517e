package models

import (
	"time"

	"github.com/google/uuid"
)

type Farmer struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Mobile            string    `json:"mobile"`
	Village           string    `json:"village"`
	State             string    `json:"state"`
	Crops             []string  `json:"crops"`
	PreferredLanguage string    `json:"preferredLanguage"` // ISO code: en, hi, mr, ta, te, kn, bn, pa, gu
	AvatarURL         string    `json:"avatarUrl,omitempty"`
	HashedPassword    string    `json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	LastActive        time.Time `json:"lastActive"`
}
