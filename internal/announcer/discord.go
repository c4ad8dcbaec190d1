package announcer

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/rs/zerolog/log"
)

// Announcer publishes auction milestones to a chat channel for spectators
// who follow along outside the web viewer.
type Announcer interface {
	AnnounceSale(playerName string, teamName string, amount int64) error
}

type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordAnnouncer(botToken string, channelID string) (*DiscordAnnouncer, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordAnnouncer{
		session:   session,
		channelID: channelID,
	}, nil
}

func (a *DiscordAnnouncer) AnnounceSale(playerName string, teamName string, amount int64) error {
	content := fmt.Sprintf("🔨 **SOLD!** %s goes to **%s** for %s", playerName, teamName, util.FormatMoney(amount))

	_, err := a.session.ChannelMessageSend(a.channelID, content)
	if err != nil {
		return fmt.Errorf("failed to send discord announcement: %w", err)
	}

	log.Info().Str("player", playerName).Str("team", teamName).Int64("amount", amount).Msg("sale announced on discord")
	return nil
}

// NoopAnnouncer is used when no Discord bot is configured.
type NoopAnnouncer struct{}

func (NoopAnnouncer) AnnounceSale(string, string, int64) error { return nil }
