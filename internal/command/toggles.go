package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
)

// feature bundles the per-kind accessors so card and creature toggles
// share one handler.
type feature struct {
	label         string
	globalEnabled func() bool
	chatEnabled   func(chatID string) bool
	setGlobal     func(enabled bool)
	setOverride   func(chatID string, enabled bool)
}

func (d *Dispatcher) cardFeature() feature {
	return feature{
		label:         "Card",
		globalEnabled: func() bool { return d.store.Settings().CardGlobal },
		chatEnabled:   d.store.CardEnabled,
		setGlobal:     d.store.SetCardGlobal,
		setOverride:   d.store.SetCardOverride,
	}
}

func (d *Dispatcher) creatureFeature() feature {
	return feature{
		label:         "Creature",
		globalEnabled: func() bool { return d.store.Settings().CreatureGlobal },
		chatEnabled:   d.store.CreatureEnabled,
		setGlobal:     d.store.SetCreatureGlobal,
		setOverride:   d.store.SetCreatureOverride,
	}
}

// toggle handles the !π (card) and !√ (creature) dot commands:
//
//	.     enable for the current group
//	..    enable globally, clearing all group overrides
//	...   disable for the current group
//	....  disable globally, clearing all group overrides
func (d *Dispatcher) toggle(ctx context.Context, env *message.Envelope, text string) {
	var f feature
	var rest string
	switch {
	case strings.HasPrefix(text, "!π"):
		f = d.cardFeature()
		rest = strings.TrimPrefix(text, "!π")
	case strings.HasPrefix(text, "!√"):
		f = d.creatureFeature()
		rest = strings.TrimPrefix(text, "!√")
	default:
		return
	}

	dots := strings.TrimSpace(rest)
	if dots == "" || strings.Trim(dots, ".") != "" || len(dots) > 4 {
		d.owner.Text(ctx, fmt.Sprintf(
			"❌ *Invalid %s AC Command!* 🤷\n\nUse `.` (group on), `..` (global on), `...` (group off) or `....` (global off). Type `!help` for details.",
			f.label))
		return
	}

	switch len(dots) {
	case 1:
		d.toggleGroup(ctx, env, f, true)
	case 2:
		d.toggleGlobal(ctx, f, true)
	case 3:
		d.toggleGroup(ctx, env, f, false)
	case 4:
		d.toggleGlobal(ctx, f, false)
	}
}

func (d *Dispatcher) toggleGroup(ctx context.Context, env *message.Envelope, f feature, enable bool) {
	if !env.IsGroup {
		d.owner.Text(ctx, fmt.Sprintf(
			"❌ *Group Command Only!* 🤷\n\nThe per-group %s AC toggle can only be used inside a group.", f.label))
		return
	}

	groupName := d.names.ChatName(ctx, env.ChatID, true)
	if f.chatEnabled(env.ChatID) == enable {
		d.owner.Text(ctx, fmt.Sprintf(
			"ℹ️ *%s AC Already %s!*\n\nNo change for group *%s*.", f.label, onOff(enable), groupName))
		return
	}

	f.setOverride(env.ChatID, enable)
	d.owner.Text(ctx, fmt.Sprintf(
		"✅ *%s AC %s!* 🎉\n\n%s auto-collection is now *%s* for group *%s*.",
		f.label, onOff(enable), f.label, onOff(enable), groupName))
}

func (d *Dispatcher) toggleGlobal(ctx context.Context, f feature, enable bool) {
	if f.globalEnabled() == enable {
		// Still apply: the global set clears lingering group overrides.
		f.setGlobal(enable)
		d.owner.Text(ctx, fmt.Sprintf(
			"ℹ️ *%s AC Already Globally %s!*\n\nAny group overrides have been cleared.", f.label, onOff(enable)))
		return
	}

	f.setGlobal(enable)
	d.owner.Text(ctx, fmt.Sprintf(
		"✅ *%s AC Globally %s!* 🎉\n\n%s auto-collection is now *%s* everywhere. All group overrides cleared.",
		f.label, onOff(enable), f.label, onOff(enable)))
}
