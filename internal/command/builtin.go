package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/parse"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/uid"
)

func (d *Dispatcher) help(ctx context.Context) {
	var b strings.Builder
	b.WriteString("📚 *Bot Commands List:*\n\n")
	b.WriteString("*--- General Commands ---*\n")
	b.WriteString("`!help` - Show this command list.\n")
	b.WriteString("`!uptime` - Check bot's uptime.\n")
	b.WriteString("`!stats` - Show bot collection statistics.\n")
	b.WriteString("`!setmode <public/private>` - Change bot's operational mode (Owner only).\n")
	b.WriteString("`!shutdown` - Shut down the bot (Owner only).\n")
	b.WriteString("`!cards` - List collected cards.\n")
	b.WriteString("`!cards-info` - Show detailed info for collected cards.\n")
	b.WriteString("`!creatures` - List collected creatures.\n")
	b.WriteString("`!status` - Show auto-collector status and group overrides (Owner only).\n")
	b.WriteString("`!clearinventory` - Clear all collected cards and creatures (Owner only, requires confirmation).\n")
	b.WriteString("`!{}` (reply to message) - Get chat id of quoted message sender (Owner only).\n\n")
	b.WriteString("*--- Auto-Collector Control (Owner Only) ---*\n")
	b.WriteString("`!π .` - Enable Card AC for current group.\n")
	b.WriteString("`!π ..` - Enable Card AC globally.\n")
	b.WriteString("`!π ...` - Disable Card AC for current group.\n")
	b.WriteString("`!π ....` - Disable Card AC globally.\n")
	b.WriteString("`!√ .` - Enable Creature AC for current group.\n")
	b.WriteString("`!√ ..` - Enable Creature AC globally.\n")
	b.WriteString("`!√ ...` - Disable Creature AC for current group.\n")
	b.WriteString("`!√ ....` - Disable Creature AC globally.\n")
	b.WriteString("`!catch <CreatureName>` (reply to bot's DM) - Manually catch a creature after the bot sends its image.\n")
	b.WriteString("`!sendtestmessages <amount> <chat_id> <delay_ms> [message]` - Send test messages (Owner only, with safeguards).\n")

	if len(d.plugins) > 0 {
		b.WriteString("\n*--- Plugin Commands ---*\n")
		for _, cmd := range d.plugins {
			desc := cmd.Description
			if desc == "" {
				desc = "No description provided."
			}
			fmt.Fprintf(&b, "`%s` - %s\n", cmd.Pattern, desc)
		}
	} else {
		b.WriteString("\n_No plugin commands loaded._\n")
	}

	d.owner.Text(ctx, b.String())
}

func (d *Dispatcher) stats(ctx context.Context) {
	settings := d.store.Settings()
	var b strings.Builder
	b.WriteString("📊 *Bot Statistics:*\n\n")
	fmt.Fprintf(&b, "*Uptime:* %s\n", d.uptime())
	fmt.Fprintf(&b, "*Current Mode:* %s\n", strings.ToUpper(string(settings.Mode)))
	fmt.Fprintf(&b, "*Global Card AutoCollector:* %s\n", onOff(settings.CardGlobal))
	fmt.Fprintf(&b, "*Global Creature AutoCollector:* %s\n", onOff(settings.CreatureGlobal))
	fmt.Fprintf(&b, "*Successful Collections:* %d\n", settings.SuccessCount)
	fmt.Fprintf(&b, "*Failed Collections:* %d\n", settings.FailureCount)
	fmt.Fprintf(&b, "*Initial Delay Range:* %s - %s\n", d.cfg.Delays.InitialMin, d.cfg.Delays.InitialMax)
	fmt.Fprintf(&b, "*Inter-Chat Delay Range:* %s - %s\n", d.cfg.Delays.InterMin, d.cfg.Delays.InterMax)
	fmt.Fprintf(&b, "*Queue Depth:* %d\n", d.queue.Pending())
	d.owner.Text(ctx, b.String())
}

func (d *Dispatcher) setMode(ctx context.Context, arg string) {
	mode := strings.ToLower(strings.TrimSpace(arg))
	if !model.ValidMode(mode) {
		d.owner.Text(ctx, "❌ *Invalid Mode!* 🤷\n\nUsage: `!setmode <public/private>`\nExample: `!setmode public`")
		return
	}
	if d.store.Mode() == model.Mode(mode) {
		d.owner.Text(ctx, fmt.Sprintf("ℹ️ *Bot Mode Already %s!*", strings.ToUpper(mode)))
		return
	}
	d.store.SetMode(model.Mode(mode))
	d.owner.Text(ctx, fmt.Sprintf("✅ *Bot Mode Updated!* 🎉\n\nBot is now in *%s* mode.", strings.ToUpper(mode)))
}

func (d *Dispatcher) listCards(ctx context.Context) {
	cards, err := d.repo.List(ctx, model.KindCard)
	if err != nil {
		d.owner.Text(ctx, fmt.Sprintf("❌ *Error reading inventory:* %v", err))
		return
	}
	if len(cards) == 0 {
		d.owner.Text(ctx, "📦 *Inventory Empty!* 🤷\n\nNo cards collected by the bot yet.")
		return
	}
	var b strings.Builder
	b.WriteString("📦 *Collected Cards List:*\n\n")
	for i, item := range cards {
		fmt.Fprintf(&b, "%d. *%s* (Tier: %s) - Captcha: `%s`\n",
			i+1, item.Card.Name, item.Card.Tier, item.Card.Captcha)
	}
	d.owner.Text(ctx, b.String())
}

func (d *Dispatcher) cardsInfo(ctx context.Context) {
	cards, err := d.repo.List(ctx, model.KindCard)
	if err != nil {
		d.owner.Text(ctx, fmt.Sprintf("❌ *Error reading inventory:* %v", err))
		return
	}
	if len(cards) == 0 {
		d.owner.Text(ctx, "📦 *Inventory Empty!* 🤷\n\nNo cards collected to show detailed information.")
		return
	}
	var b strings.Builder
	b.WriteString("Detailed Collected Cards Info:\n\n")
	for i, item := range cards {
		fmt.Fprintf(&b, "--- Card %d ---\n", i+1)
		fmt.Fprintf(&b, "*Name:* %s\n", item.Card.Name)
		fmt.Fprintf(&b, "*Tier:* %s\n", item.Card.Tier)
		fmt.Fprintf(&b, "*Description:* %s\n", item.Card.Description)
		fmt.Fprintf(&b, "*Captcha:* `%s`\n", item.Card.Captcha)
		fmt.Fprintf(&b, "*Price:* %d\n", item.Card.Price)
		fmt.Fprintf(&b, "*Card Maker:* %s\n", item.Card.Maker)
		fmt.Fprintf(&b, "*Collected At:* %s\n", item.CollectedAt.Format(time.RFC1123))
		fmt.Fprintf(&b, "*Group/Chat:* %s\n\n", item.ChatName)
	}
	d.owner.Text(ctx, b.String())
}

func (d *Dispatcher) listCreatures(ctx context.Context) {
	creatures, err := d.repo.List(ctx, model.KindCreature)
	if err != nil {
		d.owner.Text(ctx, fmt.Sprintf("❌ *Error reading inventory:* %v", err))
		return
	}
	if len(creatures) == 0 {
		d.owner.Text(ctx, "🐾 *Creature Inventory Empty!* 🤷\n\nNo creatures collected by the bot yet.")
		return
	}
	var b strings.Builder
	b.WriteString("🐾 *Collected Creatures List:*\n\n")
	for i, item := range creatures {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.Creature.Name)
	}
	d.owner.Text(ctx, b.String())
}

func (d *Dispatcher) status(ctx context.Context) {
	settings := d.store.Settings()
	var b strings.Builder
	b.WriteString("📊 *Bot Status Report:*\n\n")
	fmt.Fprintf(&b, "*Current Mode:* %s\n", strings.ToUpper(string(settings.Mode)))
	fmt.Fprintf(&b, "*Global Card AutoCollector:* %s\n", onOff(settings.CardGlobal))
	fmt.Fprintf(&b, "*Global Creature AutoCollector:* %s\n", onOff(settings.CreatureGlobal))
	fmt.Fprintf(&b, "*Uptime:* %s\n\n", d.uptime())

	writeOverrides(ctx, &b, "Card", settings.CardOverrides, d)
	writeOverrides(ctx, &b, "Creature", settings.CreatureOverrides, d)

	writeSenders(&b, "Card", d.cfg.CardSenders)
	writeSenders(&b, "Creature", d.cfg.CreatureSenders)

	d.owner.Text(ctx, b.String())
}

func writeOverrides(ctx context.Context, b *strings.Builder, feature string, overrides map[string]bool, d *Dispatcher) {
	fmt.Fprintf(b, "*%s AutoCollector Group Overrides:*\n", feature)
	if len(overrides) == 0 {
		fmt.Fprintf(b, "  _No specific %s group overrides set._\n\n", strings.ToLower(feature))
		return
	}
	for chatID, enabled := range overrides {
		name := d.names.ChatName(ctx, chatID, true)
		fmt.Fprintf(b, "  - *%s*: %s\n", name, onOff(enabled))
	}
	b.WriteString("\n")
}

func writeSenders(b *strings.Builder, feature string, senders []string) {
	fmt.Fprintf(b, "*Monitored %s Senders:*\n", feature)
	if len(senders) == 0 {
		fmt.Fprintf(b, "  _Monitoring %s messages from all senders._\n", strings.ToLower(feature))
		return
	}
	for _, s := range senders {
		fmt.Fprintf(b, "  - `%s`\n", s)
	}
}

func (d *Dispatcher) clearInventory(ctx context.Context) {
	if err := d.repo.Clear(ctx); err != nil {
		d.owner.Text(ctx, fmt.Sprintf("❌ *Error clearing inventory:* %v", err))
		return
	}
	d.store.ResetCounters()
	d.owner.Text(ctx, "✅ *Inventory Cleared!* 🎉\n\nAll collected cards and creatures have been removed. Stats reset.")
}

func (d *Dispatcher) quotedJID(ctx context.Context, env *message.Envelope) {
	if env.Payload.Quoted == nil {
		d.owner.Text(ctx, "❌ *No message quoted!* 🤷\n\nTo use `!{}`, you must reply to a message.")
		return
	}
	if env.Payload.QuotedSenderID == "" {
		d.owner.Text(ctx, "❌ *Could not get chat id of quoted message sender.* 🤷")
		return
	}
	d.owner.Text(ctx, fmt.Sprintf("ℹ️ *Quoted Sender:*\n```%s```", env.Payload.QuotedSenderID))
}

// manualCatch completes the creature identification flow. The command is
// honoured only as a direct reply to the bot's spawn notification while a
// pending context exists; anything else is rejected without touching state.
func (d *Dispatcher) manualCatch(ctx context.Context, env *message.Envelope, name string) {
	if name == "" {
		d.owner.Text(ctx, "❌ *Invalid Command!* 🤷\n\nUsage: `!catch <CreatureName>`\nExample: `!catch Snorlax`")
		return
	}

	quoted := env.Payload.Quoted
	validReply := quoted != nil &&
		strings.Contains(quoted.ImageCaption, parse.NoticeAppearedMark) &&
		strings.Contains(quoted.ImageCaption, parse.NoticeIdentifyMark) &&
		env.ChatID == d.cfg.OwnerJID

	if !validReply {
		d.owner.Text(ctx, "❌ *Manual Catch Failed!* 🤷\n\nThis command must be used as a reply to the bot's spawn notification in our private chat.")
		return
	}

	pending := d.store.TakePending()
	if pending == nil {
		d.owner.Text(ctx, "❌ *Manual Catch Failed!* 🤷\n\nNo pending creature context found. It may have already been caught or replaced by a newer spawn.")
		return
	}
	d.queue.Enqueue(model.PendingAction{
		ID:           uid.New(),
		Kind:         model.KindCreature,
		TargetChatID: pending.ChatID,
		Command:      "#catch " + name,
		Item: model.CollectedItem{
			Kind:        model.KindCreature,
			Creature:    &model.CreatureSpawn{Name: name},
			CollectedAt: d.now(),
			ChatID:      pending.ChatID,
			ChatName:    "Manual Catch",
		},
	})
	d.owner.Text(ctx, fmt.Sprintf("✅ *Manual Catch Initiated!* 🎉\n\nAttempting to catch *%s* in the original chat.", name))
}

// sendTestMessages floods a chat with numbered test messages, bounded by
// the configured max count and minimum delay.
func (d *Dispatcher) sendTestMessages(ctx context.Context, args []string) {
	usage := fmt.Sprintf(
		"❌ *Invalid Usage!* 🤷\n\nUsage: `!sendtestmessages <amount> <chat_id> <delay_ms> [message]`\n\n*Safeguards:*\n- Amount (1-%d)\n- Delay (min %dms)",
		d.cfg.TestMaxMessages, d.cfg.TestMinDelay.Milliseconds())

	if len(args) < 3 {
		d.owner.Text(ctx, usage)
		return
	}

	amount, err1 := strconv.Atoi(args[0])
	target := args[1]
	delayMs, err2 := strconv.Atoi(args[2])
	content := "Test message"
	if len(args) > 3 {
		content = strings.Join(args[3:], " ")
	}

	delay := time.Duration(delayMs) * time.Millisecond
	if err1 != nil || err2 != nil || amount <= 0 || delay < d.cfg.TestMinDelay || target == "" {
		d.owner.Text(ctx, usage)
		return
	}
	if amount > d.cfg.TestMaxMessages {
		d.owner.Text(ctx, fmt.Sprintf("⚠️ *Amount Too High!* ⛔\n\nMaximum messages allowed per command is %d.", d.cfg.TestMaxMessages))
		return
	}

	d.owner.Text(ctx, fmt.Sprintf("🚀 *Sending %d test messages to `%s` with %s delay...*", amount, target, delay))
	for i := 1; i <= amount; i++ {
		err := d.client.SendMessage(ctx, target,
			transport.Message{Text: fmt.Sprintf("%s [%d/%d]", content, i, amount)},
			transport.SendOptions{DisableEphemeral: true})
		if err != nil {
			d.owner.Text(ctx, fmt.Sprintf("❌ *Failed to send test message %d to `%s`!* ⛔\n\nError: %v", i, target, err))
		}
		if i < amount {
			d.sleep(delay)
		}
	}
	d.owner.Text(ctx, fmt.Sprintf("✅ *Finished sending %d test messages to `%s`.*", amount, target))
}

func onOff(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}
