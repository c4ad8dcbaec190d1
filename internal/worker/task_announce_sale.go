package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// PayloadAnnounceSale carries everything needed to announce a finished sale
// without reading the player row again.
type PayloadAnnounceSale struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	TeamID     int64  `json:"team_id"`
	TeamName   string `json:"team_name"`
	Amount     int64  `json:"amount"`
}

func (distributor *RedisTaskDistributor) DistributeTaskAnnounceSale(
	ctx context.Context,
	payload *PayloadAnnounceSale,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskAnnounceSale, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

// ProcessTaskAnnounceSale posts the sale to the Discord channel and emails
// the winning team's members. Both channels are best-effort relative to the
// committed sale, but failures are retried by asynq.
func (processor *RedisTaskProcessor) ProcessTaskAnnounceSale(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadAnnounceSale
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	if err := processor.announcer.AnnounceSale(payload.PlayerName, payload.TeamName, payload.Amount); err != nil {
		log.Error().Err(err).Int64("player_id", payload.PlayerID).Msg("failed to announce sale on discord")
		return err
	}

	if processor.mailSender != nil {
		members, err := processor.store.ListUsersByTeamID(ctx, payload.TeamID)
		if err != nil {
			log.Error().Err(err).Int64("team_id", payload.TeamID).Msg("failed to list team members for sale email")
			return err
		}

		recipients := make([]string, 0, len(members))
		for _, member := range members {
			recipients = append(recipients, member.Email)
		}

		if len(recipients) > 0 {
			subject := fmt.Sprintf("%s joins %s!", payload.PlayerName, payload.TeamName)
			body := fmt.Sprintf("Congratulations! Your team %s won %s for %s.",
				payload.TeamName, payload.PlayerName, util.FormatMoney(payload.Amount))

			if err = processor.mailSender.Send(subject, body, recipients); err != nil {
				log.Error().Err(err).Int64("team_id", payload.TeamID).Msg("failed to email winning team")
				return err
			}
		}
	}

	log.Info().Str("type", task.Type()).Int64("player_id", payload.PlayerID).
		Int64("team_id", payload.TeamID).Msg("task processed")

	return nil
}
