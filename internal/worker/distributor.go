package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

const (
	TaskSendNotification = "notification:send"
	TaskAnnounceSale     = "auction:announce_sale"
)

/*
This file contains the code to create tasks and distribute them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskSendNotification(ctx context.Context, payload *PayloadSendNotification, opts ...asynq.Option) error
	DistributeTaskAnnounceSale(ctx context.Context, payload *PayloadAnnounceSale, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client: client,
	}
}
