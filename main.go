package main

import (
	"context"
	"os"

	"github.com/deepakscse/auction-BE/api"
	"github.com/deepakscse/auction-BE/internal/announcer"
	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/hub"
	"github.com/deepakscse/auction-BE/internal/mailer"
	"github.com/deepakscse/auction-BE/internal/session"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/worker"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	store := db.NewStore(connPool)

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt)

	go runTaskProcessor(config, redisOpt, store)

	eventHub := hub.New(config.MaxEvents)
	sessions := session.NewManager(redisDb)

	runHTTPServer(config, store, eventHub, sessions, taskDistributor)
}

func runTaskProcessor(config util.Config, redisOpt asynq.RedisClientOpt, store db.Store) {
	var saleAnnouncer announcer.Announcer = announcer.NoopAnnouncer{}
	if config.DiscordBotToken != "" && config.DiscordChannelID != "" {
		discordAnnouncer, err := announcer.NewDiscordAnnouncer(config.DiscordBotToken, config.DiscordChannelID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord announcer 😣")
		}
		saleAnnouncer = discordAnnouncer
	} else {
		log.Warn().Msg("discord bot not configured, sale announcements disabled")
	}

	var mailService mailer.EmailSender
	if config.GmailSMTPUsername != "" && config.GmailSMTPPassword != "" {
		gmailSender, err := mailer.NewGmailSender(config.GmailSMTPUsername, config.GmailSMTPPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer service 😣")
		}
		mailService = gmailSender
	} else {
		log.Warn().Msg("smtp not configured, sale emails disabled")
	}

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, store, saleAnnouncer, mailService)

	log.Info().Msg("start task processor ✅")
	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runHTTPServer(config util.Config, store db.Store, eventHub *hub.Hub, sessions *session.Manager, taskDistributor worker.TaskDistributor) {
	server, err := api.NewServer(store, eventHub, sessions, taskDistributor, &config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
