package worker

import (
	"context"

	"github.com/deepakscse/auction-BE/internal/announcer"
	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/mailer"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

/*
This file contains the code that picks up tasks from the Redis queue and processes them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

type RedisTaskProcessor struct {
	server     *asynq.Server
	store      db.Store
	announcer  announcer.Announcer
	mailSender mailer.EmailSender
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, store db.Store, saleAnnouncer announcer.Announcer, mailSender mailer.EmailSender) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:     server,
		store:      store,
		announcer:  saleAnnouncer,
		mailSender: mailSender,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskSendNotification, processor.ProcessTaskSendNotification)
	mux.HandleFunc(TaskAnnounceSale, processor.ProcessTaskAnnounceSale)

	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
