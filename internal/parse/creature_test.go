package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCreatureSpawn(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "full announcement",
			text:     "A Wild Creature Has Appeared!\n\nUse *#catch <creature_name>* to catch it!",
			expected: true,
		},
		{
			name:     "header only",
			text:     "A Wild Creature Has Appeared!",
			expected: false,
		},
		{
			name:     "instruction only",
			text:     "Use *#catch <creature_name>*",
			expected: false,
		},
		{
			name:     "ordinary chat",
			text:     "a wild party appeared last night",
			expected: false,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
		{
			name:     "invisible characters stripped before matching",
			text:     "A Wild\u200B Creature Has Appeared!\nUse *#catch <creature_name>*",
			expected: true,
		},
		{
			name:     "card spawn is not a creature",
			text:     "*A Collectable card Has Arrived!*\n*🃏 Card Details 🃏*\n🍀 *Captcha:* AB12",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCreatureSpawn(tt.text))
		})
	}
}
