// Package command implements the owner-facing command surface: simple
// prefix dispatch over the chat transport, mutating core state through the
// same accessors the collection pipeline uses.
package command

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/dispatch"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/names"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/storage"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"
)

// Config carries the static knobs the command handlers report or enforce.
type Config struct {
	OwnerNumber     string
	OwnerJID        string
	Delays          dispatch.Config
	TestMaxMessages int
	TestMinDelay    time.Duration
	CardSenders     []string
	CreatureSenders []string
}

// Dispatcher routes "!"-prefixed messages to their handlers.
type Dispatcher struct {
	cfg    Config
	store  *state.Store
	repo   storage.InventoryRepository
	queue  *dispatch.Dispatcher
	client transport.Client
	names  *names.Resolver
	owner  *transport.OwnerNotifier

	startedAt time.Time
	plugins   []PluginCommand

	// shutdown is invoked by !shutdown and !restart; main wires it to
	// cancel the run context.
	shutdown func()

	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a command dispatcher.
func New(
	cfg Config,
	store *state.Store,
	repo storage.InventoryRepository,
	queue *dispatch.Dispatcher,
	client transport.Client,
	resolver *names.Resolver,
	owner *transport.OwnerNotifier,
	shutdown func(),
) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		store:     store,
		repo:      repo,
		queue:     queue,
		client:    client,
		names:     resolver,
		owner:     owner,
		startedAt: time.Now(),
		shutdown:  shutdown,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Register adds a plugin command. Registration is programmatic; the bot
// core does not discover command files on disk.
func (d *Dispatcher) Register(cmd PluginCommand) {
	d.plugins = append(d.plugins, cmd)
	log.Printf("[Command] Registered plugin command: %s", cmd.Pattern)
}

// Handle processes one envelope if it carries a command. Returns true when
// the message was a command (even an unknown or rejected one).
func (d *Dispatcher) Handle(ctx context.Context, env *message.Envelope) bool {
	text := strings.TrimSpace(env.Text())
	if !strings.HasPrefix(text, "!") {
		return false
	}

	isOwner := d.cfg.OwnerNumber != "" && strings.Contains(env.SenderID, d.cfg.OwnerNumber)

	if d.store.Mode() == model.ModePrivate && !isOwner {
		log.Printf("[Command] Blocked non-owner command %q in private mode from %s", text, env.SenderID)
		d.owner.Text(ctx, "🚫 *Command Blocked!* ⛔\n\nI am currently in *PRIVATE* mode. Only the owner can use commands.")
		return true
	}

	log.Printf("[Command] %q from %s", text, env.SenderID)

	switch {
	case text == "!help":
		d.help(ctx)
	case text == "!uptime":
		d.owner.Text(ctx, fmt.Sprintf("📊 *Bot Uptime:*\n```%s```", d.uptime()))
	case text == "!stats":
		d.ownerOnly(ctx, isOwner, "check stats", d.stats)
	case strings.HasPrefix(text, "!setmode "):
		d.ownerOnly(ctx, isOwner, "change the bot's mode", func(ctx context.Context) {
			d.setMode(ctx, strings.TrimPrefix(text, "!setmode "))
		})
	case text == "!restart" || text == "!shutdown":
		d.ownerOnly(ctx, isOwner, "stop the bot", func(ctx context.Context) {
			d.owner.Text(ctx, "🔴 *Stopping Bot...* 😴\n\nGoodbye!")
			d.shutdown()
		})
	case text == "!cards":
		d.listCards(ctx)
	case text == "!cards-info":
		d.cardsInfo(ctx)
	case text == "!creatures":
		d.listCreatures(ctx)
	case text == "!status":
		d.ownerOnly(ctx, isOwner, "check the bot's status", d.status)
	case text == "!clearinventory":
		d.ownerOnly(ctx, isOwner, "clear the inventory", func(ctx context.Context) {
			d.owner.Text(ctx, "⚠️ *Confirm Clear Inventory!* ⚠️\n\nAre you sure you want to delete ALL collected cards and creatures?\n\n*Reply with `!confirm clear` to proceed.* This action cannot be undone.")
		})
	case text == "!confirm clear":
		d.ownerOnly(ctx, isOwner, "confirm this action", d.clearInventory)
	case strings.HasPrefix(text, "!π") || strings.HasPrefix(text, "!√"):
		d.ownerOnly(ctx, isOwner, "manage AutoCollector settings", func(ctx context.Context) {
			d.toggle(ctx, env, text)
		})
	case text == "!{}":
		d.ownerOnly(ctx, isOwner, "use this command", func(ctx context.Context) {
			d.quotedJID(ctx, env)
		})
	case strings.HasPrefix(text, "!catch "):
		d.ownerOnly(ctx, isOwner, "use this command", func(ctx context.Context) {
			d.manualCatch(ctx, env, strings.TrimSpace(strings.TrimPrefix(text, "!catch ")))
		})
	case strings.HasPrefix(text, "!sendtestmessages "):
		d.ownerOnly(ctx, isOwner, "use this command", func(ctx context.Context) {
			d.sendTestMessages(ctx, strings.Fields(strings.TrimPrefix(text, "!sendtestmessages ")))
		})
	default:
		if d.runPlugin(ctx, env, text, isOwner) {
			return true
		}
		log.Printf("[Command] Unknown command: %s", text)
		d.owner.Text(ctx, fmt.Sprintf("❓ *Unknown Command!* 🤷\n\nI didn't recognize the command: `%s`\n\nType `!help` for a list of available commands.", text))
	}
	return true
}

// ownerOnly runs fn when the sender is the owner, otherwise reports the
// denial.
func (d *Dispatcher) ownerOnly(ctx context.Context, isOwner bool, action string, fn func(context.Context)) {
	if !isOwner {
		d.owner.Text(ctx, fmt.Sprintf("🚫 *Permission Denied!* ⛔\n\nOnly the bot owner can %s.", action))
		return
	}
	fn(ctx)
}

// uptime formats elapsed runtime as days/hours/minutes/seconds.
func (d *Dispatcher) uptime() string {
	elapsed := d.now().Sub(d.startedAt)
	seconds := int64(elapsed.Seconds())
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours%24, minutes%60, seconds%60)
}
