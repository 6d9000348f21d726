package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/cache"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/collector"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/command"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/config"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/dispatch"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/handler"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/names"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/router"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/state"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/storage"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/transport"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Auto-Claim bot...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize inventory repository based on config
	var inventoryRepo storage.InventoryRepository
	switch cfg.Storage.Type {
	case "mysql":
		mysqlRepo, err := storage.NewMySQLRepository(cfg.Storage.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		inventoryRepo = mysqlRepo
		log.Println("MySQL inventory repository initialized")
	case "sqlite":
		sqliteRepo, err := storage.NewSQLiteRepository(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		inventoryRepo = sqliteRepo
		log.Println("SQLite inventory repository initialized")
	default: // file
		inventoryRepo = storage.NewFileRepository(cfg.Storage.CardsPath, cfg.Storage.CreaturesPath)
		log.Println("File inventory repository initialized")
	}
	defer inventoryRepo.Close()

	// Initialize cache for the group-name resolver
	var nameCache cache.Cache = cache.NewMemoryCache()
	if cfg.Cache.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
		} else {
			nameCache = cache.NewRedisCache(redisClient)
			log.Println("Redis cache initialized")
		}
		cancel()
	}

	// Settings and counters
	store := state.New(cfg.Storage.SettingsPath, model.Mode(cfg.App.Mode))

	// Transport. The console transport drives the pipeline from stdin; a
	// live session client satisfies the same interfaces.
	ownerJID := cfg.Owner.JID()
	console := transport.NewConsole(os.Stdin, ownerJID)
	var client transport.Client = console
	var listener transport.Listener = console
	owner := transport.NewOwnerNotifier(client, ownerJID)

	resolver := names.New(client, nameCache, cfg.Cache.TTL)

	// Outgoing action queue
	delays := dispatch.Config{
		InitialMin: cfg.Delays.InitialMin,
		InitialMax: cfg.Delays.InitialMax,
		InterMin:   cfg.Delays.InterMin,
		InterMax:   cfg.Delays.InterMax,
	}
	queue := dispatch.New(client, store, inventoryRepo, owner, delays)

	// Collection pipeline
	col := collector.New(store, queue, client, resolver, owner,
		cfg.Monitor.CardSenders, cfg.Monitor.CreatureSenders, cfg.Monitor.MaxMessageAge)

	// Run context: cancelled by signals or the !shutdown command
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Owner command surface
	commands := command.New(command.Config{
		OwnerNumber:     cfg.Owner.Number,
		OwnerJID:        ownerJID,
		Delays:          delays,
		TestMaxMessages: cfg.TestSender.MaxMessages,
		TestMinDelay:    cfg.TestSender.MinDelay,
		CardSenders:     cfg.Monitor.CardSenders,
		CreatureSenders: cfg.Monitor.CreatureSenders,
	}, store, inventoryRepo, queue, client, resolver, owner, cancel)

	// Admin HTTP server (optional)
	var srv *http.Server
	if cfg.Server.Enabled {
		r := router.New(router.Config{
			Handler:          handler.New(queue, cfg.App.Version),
			StatsHandler:     handler.NewStatsHandler(store, queue, delays),
			InventoryHandler: handler.NewInventoryHandler(inventoryRepo),
			AdminKey:         cfg.Server.AdminKey,
		})

		srv = &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		go func() {
			log.Printf("Admin server listening on %s", cfg.Server.Address())
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server error: %v", err)
			}
		}()
	}

	// Translate OS signals into run-context cancellation
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Signal received, shutting down...")
		cancel()
	}()

	owner.Text(ctx, "🤖 *Bot Online!* ✅\n\nAuto-collector is running. Type `!help` for commands.")

	// Event loop: spawns take precedence over commands
	for {
		select {
		case <-ctx.Done():
			shutdown(srv, queue, cfg.Server.ShutdownTimeout)
			return
		case env, ok := <-listener.Messages():
			if !ok {
				log.Println("Message stream closed")
				shutdown(srv, queue, cfg.Server.ShutdownTimeout)
				return
			}
			if col.Handle(ctx, &env) {
				continue
			}
			commands.Handle(ctx, &env)
		}
	}
}

// shutdown drains the action queue and stops the admin server.
func shutdown(srv *http.Server, queue *dispatch.Dispatcher, timeout time.Duration) {
	log.Println("Waiting for queued actions to finish...")
	queue.Wait()

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}

	log.Println("Bot stopped")
}
