// Package parse matches normalized chat text against the fixed templates
// used by the monitored spawn bots. The templates are bot-authored, so the
// literal markers below are treated as configuration: update the marker or
// its field pattern here, never the control flow.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
)

// Literal gates: all three must be present before any extraction runs.
// They are cheap rejection filters for the common case of ordinary chat.
const (
	cardHeader      = "*A Collectable card Has Arrived!*"
	cardDetailsMark = "*🃏 Card Details 🃏*"
	captchaMark     = "🍀 *Captcha:*"
)

// detailsBlockRe isolates the text between the details sub-header and the
// next delimiter: the "use #collect" instruction, a placeholder token, a
// bracketed token, or end of input.
var detailsBlockRe = regexp.MustCompile(`(?s)\*🃏 Card Details 🃏\*\s*(.*?)(?:Use \*#collect\*|<captcha>|\[\s*\w+\s*\]|$)`)

// captchaRe matches the one required field. A parse with no captcha is a
// failed parse; there is nothing to collect without the token.
var captchaRe = regexp.MustCompile(`🍀 \*Captcha:\* ([A-Z0-9]+)`)

// fieldSpec is one optional line-anchored field: its capture pattern and the
// placeholder used when the announcement omits the line.
type fieldSpec struct {
	re  *regexp.Regexp
	def string
}

var (
	nameField  = fieldSpec{regexp.MustCompile(`🔰 \*Name:\*:?\s*(.+?)(?:\n|$)`), "Unknown Card"}
	descField  = fieldSpec{regexp.MustCompile(`🛡 \*Description:\*:?\s*(.+?)(?:\n|$)`), "No description provided."}
	tierField  = fieldSpec{regexp.MustCompile(`🏹 \*Tier:\*:?\s*(\d+|[Ss])(?:\n|$)`), "Unknown Tier"}
	priceField = fieldSpec{regexp.MustCompile(`💎 \*Price:\*:?\s*(\d+)(?:\n|$)`), "0"}
	makerField = fieldSpec{regexp.MustCompile(`🧧 \*Card Maker:\*:?\s*(.+?)(?:\n|$)`), "Unknown Maker"}
)

// extract returns the field's trimmed capture, or its default when the line
// is missing. Partial announcements still yield a usable record.
func (f fieldSpec) extract(block string) string {
	m := f.re.FindStringSubmatch(block)
	if m == nil {
		return f.def
	}
	return strings.TrimSpace(m[1])
}

// ParseCard extracts a card spawn from raw chat text. It returns nil when
// the text is not a card announcement or lacks a captcha; that is the
// ordinary "no spawn here" outcome, not an error.
func ParseCard(raw string) *model.CardSpawn {
	body := message.Normalize(raw)

	if !strings.Contains(body, cardHeader) ||
		!strings.Contains(body, cardDetailsMark) ||
		!strings.Contains(body, captchaMark) {
		return nil
	}

	blockMatch := detailsBlockRe.FindStringSubmatch(body)
	if blockMatch == nil {
		return nil
	}
	block := message.Normalize(blockMatch[1])

	captchaMatch := captchaRe.FindStringSubmatch(block)
	if captchaMatch == nil {
		return nil
	}

	card := &model.CardSpawn{
		Name:        nameField.extract(block),
		Captcha:     strings.ToUpper(captchaMatch[1]),
		Description: descField.extract(block),
		Tier:        parseTier(tierField.extract(block)),
		Maker:       makerField.extract(block),
	}
	if price, err := strconv.Atoi(priceField.extract(block)); err == nil {
		card.Price = price
	}
	return card
}

// parseTier emits an integer tier when the token is numeric, and uppercases
// single-letter grades ("s" becomes "S"). The "Unknown Tier" placeholder
// passes through unchanged.
func parseTier(token string) model.Tier {
	if n, err := strconv.Atoi(token); err == nil {
		return model.NumericTier(n)
	}
	if len(token) == 1 {
		return model.GradeTier(strings.ToUpper(token))
	}
	return model.GradeTier(token)
}
