package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pickupfc/matchday/internal/handlers/discord"
	"github.com/pickupfc/matchday/internal/handlers/health"
	draftRepo "github.com/pickupfc/matchday/internal/repositories/draft"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	sessionRepo "github.com/pickupfc/matchday/internal/repositories/session"
	voteRepo "github.com/pickupfc/matchday/internal/repositories/vote"
	"github.com/pickupfc/matchday/internal/schedule"
	"github.com/pickupfc/matchday/internal/services/messaging"
	"github.com/pickupfc/matchday/internal/services/reminder"
	"github.com/pickupfc/matchday/internal/services/setup"
	"github.com/pickupfc/matchday/internal/services/signup"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load a local .env in development; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	members, err := memberRepo.NewRedis(&memberRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create member repository: %v", err)
	}

	drafts, err := draftRepo.NewRedis(&draftRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create draft repository: %v", err)
	}

	votes, err := voteRepo.NewRedis(&voteRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create vote repository: %v", err)
	}

	// Initialize services
	sched := schedule.New(&schedule.Config{})

	signupSvc, err := signup.NewService(ctx, &signup.Config{}, sessions, members, drafts, votes, sched)
	if err != nil {
		log.Fatalf("Failed to create signup service: %v", err)
	}

	setupSvc, err := setup.NewService(ctx, &setup.Config{}, drafts, signupSvc, sched)
	if err != nil {
		log.Fatalf("Failed to create setup service: %v", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.Config{})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Get application ID for the bot
	applicationID := getEnv("APPLICATION_ID", "")

	// Get optional guild ID for development
	guildID := getEnv("GUILD_ID", "")

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:            discordToken,
		ApplicationID:    applicationID,
		GuildID:          guildID,
		SignupService:    signupSvc,
		SetupService:     setupSvc,
		MessagingService: messagingSvc,
		MemberRepo:       members,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// The bot delivers reminder notifications
	reminderSvc, err := reminder.NewService(ctx, &reminder.Config{}, sessions, members, votes, messagingSvc, bot)
	if err != nil {
		log.Fatalf("Failed to create reminder service: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Healthcheck endpoint for the hosting platform
	go health.New().Run(getEnv("HTTP_ADDR", ":8080"))

	// Periodic reminder sweep
	interval := reminderInterval()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := reminderSvc.Sweep(context.Background()); err != nil {
					log.Printf("Reminder sweep failed: %v", err)
				}
			case <-done:
				return
			}
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	close(done)

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// reminderInterval reads REMINDER_INTERVAL, defaulting to a two-hour
// cadence
func reminderInterval() time.Duration {
	raw := getEnv("REMINDER_INTERVAL", "2h")
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		log.Printf("Invalid REMINDER_INTERVAL %q, using 2h", raw)
		return 2 * time.Hour
	}
	return interval
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
