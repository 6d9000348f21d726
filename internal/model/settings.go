package model

// Mode is the bot's operational mode.
type Mode string

const (
	ModePrivate Mode = "private" // only the owner may issue commands
	ModePublic  Mode = "public"  // anyone may issue commands
)

// ValidMode reports whether s names a known mode.
func ValidMode(s string) bool {
	return Mode(s) == ModePrivate || Mode(s) == ModePublic
}

// Settings is the durable bot configuration plus collection counters.
// Group overrides, when present, take precedence over the global flags.
type Settings struct {
	Mode              Mode            `json:"mode"`
	CardGlobal        bool            `json:"card_global_enabled"`
	CardOverrides     map[string]bool `json:"card_group_overrides"`
	CreatureGlobal    bool            `json:"creature_global_enabled"`
	CreatureOverrides map[string]bool `json:"creature_group_overrides"`
	SuccessCount      int64           `json:"success_count"`
	FailureCount      int64           `json:"failure_count"`
}

// DefaultSettings returns settings for a fresh install.
func DefaultSettings(mode Mode) Settings {
	if mode != ModePublic {
		mode = ModePrivate
	}
	return Settings{
		Mode:              mode,
		CardOverrides:     map[string]bool{},
		CreatureOverrides: map[string]bool{},
	}
}

// Clone returns a deep copy so callers cannot mutate shared override maps.
func (s Settings) Clone() Settings {
	out := s
	out.CardOverrides = make(map[string]bool, len(s.CardOverrides))
	for k, v := range s.CardOverrides {
		out.CardOverrides[k] = v
	}
	out.CreatureOverrides = make(map[string]bool, len(s.CreatureOverrides))
	for k, v := range s.CreatureOverrides {
		out.CreatureOverrides[k] = v
	}
	return out
}
