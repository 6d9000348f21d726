package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
)

const fullCardText = `*A Collectable card Has Arrived!*

*🃏 Card Details 🃏*
🔰 *Name:* Blue Eyes White Dragon
🛡 *Description:* A legendary dragon of destruction.
🏹 *Tier:* 6
💎 *Price:* 1500
🧧 *Card Maker:* Kazuki Takahashi
🍀 *Captcha:* XK4P9

Use *#collect* to claim it!`

func TestParseCard_FullAnnouncement(t *testing.T) {
	card := ParseCard(fullCardText)
	require.NotNil(t, card)

	assert.Equal(t, "Blue Eyes White Dragon", card.Name)
	assert.Equal(t, "XK4P9", card.Captcha)
	assert.Equal(t, "A legendary dragon of destruction.", card.Description)
	assert.Equal(t, model.NumericTier(6), card.Tier)
	assert.Equal(t, 1500, card.Price)
	assert.Equal(t, "Kazuki Takahashi", card.Maker)
}

func TestParseCard_MinimalAnnouncementUsesDefaults(t *testing.T) {
	text := "*A Collectable card Has Arrived!*\n" +
		"*🃏 Card Details 🃏*\n" +
		"🔰 *Name:* Dragon\n" +
		"🍀 *Captcha:* AB12\n" +
		"Use *#collect*"

	card := ParseCard(text)
	require.NotNil(t, card)

	assert.Equal(t, "Dragon", card.Name)
	assert.Equal(t, "AB12", card.Captcha)
	assert.Equal(t, "No description provided.", card.Description)
	assert.Equal(t, model.GradeTier("Unknown Tier"), card.Tier)
	assert.Equal(t, 0, card.Price)
	assert.Equal(t, "Unknown Maker", card.Maker)
}

func TestParseCard_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "empty text",
			text: "",
		},
		{
			name: "ordinary chat",
			text: "hey did anyone see that card earlier?",
		},
		{
			name: "header without details section",
			text: "*A Collectable card Has Arrived!*\n🍀 *Captcha:* AB12",
		},
		{
			name: "details without header",
			text: "*🃏 Card Details 🃏*\n🔰 *Name:* Dragon\n🍀 *Captcha:* AB12",
		},
		{
			name: "missing captcha marker",
			text: "*A Collectable card Has Arrived!*\n*🃏 Card Details 🃏*\n🔰 *Name:* Dragon",
		},
		{
			name: "captcha marker but malformed token",
			text: "*A Collectable card Has Arrived!*\n*🃏 Card Details 🃏*\n🍀 *Captcha:* ab-12",
		},
		{
			name: "creature spawn is not a card",
			text: "A Wild Creature Has Appeared!\nUse *#catch <creature_name>*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseCard(tt.text))
		})
	}
}

func TestParseCard_GradeTier(t *testing.T) {
	text := "*A Collectable card Has Arrived!*\n" +
		"*🃏 Card Details 🃏*\n" +
		"🏹 *Tier:* S\n" +
		"🍀 *Captcha:* ZZ99\n" +
		"Use *#collect*"

	card := ParseCard(text)
	require.NotNil(t, card)
	assert.Equal(t, model.GradeTier("S"), card.Tier)
	assert.Equal(t, "S", card.Tier.String())
}

func TestParseCard_LowercaseGradeUppercased(t *testing.T) {
	text := "*A Collectable card Has Arrived!*\n" +
		"*🃏 Card Details 🃏*\n" +
		"🏹 *Tier:* s\n" +
		"🍀 *Captcha:* QQ11\n" +
		"Use *#collect*"

	card := ParseCard(text)
	require.NotNil(t, card)
	assert.Equal(t, model.GradeTier("S"), card.Tier)
}

func TestParseCard_InvisibleCharactersStripped(t *testing.T) {
	// Zero-width spaces scattered through the template must not break the
	// literal gates.
	text := "*A Collectable\u200B card Has Arrived!*\n" +
		"*🃏 Card Details 🃏*\n" +
		"🔰 *Name:* Pika\u200Bchu\n" +
		"🍀 *Captcha:* GG77\n" +
		"Use *#collect*"

	card := ParseCard(text)
	require.NotNil(t, card)
	assert.Equal(t, "Pikachu", card.Name)
	assert.Equal(t, "GG77", card.Captcha)
}

func TestParseCard_SurroundingChatter(t *testing.T) {
	text := "look at this!\n" + fullCardText + "\nwow nice card"

	card := ParseCard(text)
	require.NotNil(t, card)
	assert.Equal(t, "XK4P9", card.Captcha)
}
