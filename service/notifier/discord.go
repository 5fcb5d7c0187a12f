package notifier

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/account"
)

// DiscordSession is the part of *discordgo.Session the notifier uses
type DiscordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string) error
}

type DiscordCfg struct {
	Session DiscordSession
	Players account.PlayerRepo
}

type discordImpl struct {
	session DiscordSession
	players account.PlayerRepo
}

// NewDiscord posts notifications to the player's discord channel, players
// without one are unreachable
func NewDiscord(cfg *DiscordCfg) account.Notifier {
	return &discordImpl{
		session: cfg.Session,
		players: cfg.Players,
	}
}

func (im *discordImpl) Notify(c ctx.Ctx, user domain.UserId, title string, lines []string) (account.Notice, error) {
	p, err := im.players.FindOne(c, user)
	if err == domain.ErrNotFound {
		return nil, account.ErrUnreachable
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "user": user}).Error("players.FindOne failed")
		return nil, err
	}
	if p.DiscordChannel == "" {
		return nil, account.ErrUnreachable
	}

	msg, err := im.session.ChannelMessageSendEmbed(p.DiscordChannel, &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(lines, "\n"),
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "user": user}).Error("discord.ChannelMessageSendEmbed failed")
		return nil, err
	}
	return &discordNotice{session: im.session, channel: p.DiscordChannel, id: msg.ID}, nil
}

type discordNotice struct {
	session DiscordSession
	channel string
	id      string
}

func (n *discordNotice) Dismiss(c ctx.Ctx) error {
	if err := n.session.ChannelMessageDelete(n.channel, n.id); err != nil {
		c.WithFields(log.Fields{"err": err, "channel": n.channel}).Error("discord.ChannelMessageDelete failed")
		return err
	}
	return nil
}
