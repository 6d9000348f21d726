package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Kind distinguishes the two collectable types.
type Kind string

const (
	KindCard     Kind = "card"
	KindCreature Kind = "creature"
)

// Tier is a card tier: either numeric or a letter grade such as "S".
// It marshals as a JSON number when numeric and as a string otherwise.
type Tier struct {
	Number int
	Grade  string // set when the tier is non-numeric
}

// NumericTier returns a numeric tier value.
func NumericTier(n int) Tier { return Tier{Number: n} }

// GradeTier returns a letter-grade tier value.
func GradeTier(g string) Tier { return Tier{Grade: g} }

// String renders the tier for listings.
func (t Tier) String() string {
	if t.Grade != "" {
		return t.Grade
	}
	return strconv.Itoa(t.Number)
}

// MarshalJSON implements json.Marshaler.
func (t Tier) MarshalJSON() ([]byte, error) {
	if t.Grade != "" {
		return json.Marshal(t.Grade)
	}
	return json.Marshal(t.Number)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Tier{Number: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Tier{Grade: s}
	return nil
}

// CardSpawn holds the fields extracted from a card announcement.
// The captcha is the only required field; the rest carry placeholder
// defaults when the announcement omits them.
type CardSpawn struct {
	Name        string `json:"name"`
	Captcha     string `json:"captcha"`
	Description string `json:"description"`
	Tier        Tier   `json:"tier"`
	Price       int    `json:"price"`
	Maker       string `json:"maker"`
}

// CreatureSpawn holds a creature identified manually by the owner.
type CreatureSpawn struct {
	Name string `json:"name"`
}

// CollectedItem is an inventory entry: a spawn plus collection context.
type CollectedItem struct {
	Kind        Kind           `json:"kind"`
	Card        *CardSpawn     `json:"card,omitempty"`
	Creature    *CreatureSpawn `json:"creature,omitempty"`
	CollectedAt time.Time      `json:"collected_at"`
	ChatID      string         `json:"chat_id"`
	ChatName    string         `json:"chat_name"`
}

// PendingAction is one queued collection attempt. It is consumed exactly
// once by the dispatcher and discarded after success or failure.
type PendingAction struct {
	ID           string
	Kind         Kind
	TargetChatID string
	Command      string
	Item         CollectedItem
}
