// Package bot is the command dispatcher: it turns one line of chat input
// into one reply string. Every domain error is recovered into a
// user-facing message at this boundary; the caller only ever sees text.
package bot

import (
	"context"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/jumpedia/jumpedia/internal/batch"
	"github.com/jumpedia/jumpedia/internal/catalog"
	"github.com/jumpedia/jumpedia/internal/channels"
	"github.com/jumpedia/jumpedia/internal/config"
	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/index"
	"github.com/jumpedia/jumpedia/internal/pastee"
	"github.com/jumpedia/jumpedia/internal/query"
)

// Bot wires the command surface to the engines and stores.
type Bot struct {
	Config   *config.Config
	Catalog  *catalog.Store
	Batches  *batch.Engine
	Queries  *query.Engine
	Index    *index.Database
	Channels *channels.Store
	Paste    *pastee.Client
	Log      *zap.Logger
	Now      func() time.Time
}

func (b *Bot) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now().UTC()
}

// Actor resolves an identity once per command from the configured role
// lists. Everyone may rate.
func (b *Bot) Actor(id, name string) identity.Actor {
	return identity.Actor{
		ID:        id,
		Name:      name,
		Admin:     b.Config.IsAdmin(id),
		Moderator: b.Config.IsModerator(id),
		Rater:     true,
	}
}

const quotingHelp = "Put arguments with special characters like `'` or `SPACE` into `\"quotation marks\"` or alternatively put a `\\` behind every special character\nExample: `\"Bowser's Kingdom\"` or `Bowser\\'s\\ Kingdom`"

const unknownCommand = "That command doesn't exist! Enter `!help` if you need assistance!"

// Dispatch handles one line of input in a channel on behalf of an actor.
// Returns "" when the line is not addressed to the bot: wrong channel
// kind, missing prefix, or a bare prefix.
func (b *Bot) Dispatch(ctx context.Context, channelID string, actor identity.Actor, input string) string {
	if b.Channels != nil && channelID != "" && b.Channels.Get(channelID) != channels.KindCommands {
		return ""
	}

	prefix := b.Config.GetPrefix()
	if !strings.HasPrefix(input, prefix) || len(input) == len(prefix) {
		return ""
	}

	args, err := shellquote.Split(input[len(prefix):])
	if err != nil || len(args) == 0 {
		return quotingHelp
	}

	cmd := strings.ToLower(args[0])
	if cmd == "rem" {
		cmd = "del"
	}

	if b.Log != nil {
		b.Log.Debug("command", zap.String("cmd", cmd), zap.String("actor", actor.ID))
	}

	var reply string
	switch cmd {
	case "help":
		reply = b.help()
	case "info":
		reply = b.info(strings.Join(args[1:], " "))
	case "list":
		reply, err = b.list(ctx, actor, args[1:])
	case "give":
		reply, err = b.give(actor, args[1:])
	case "del":
		reply, err = b.del(actor, strings.Join(args[1:], " "))
	case "proof":
		reply, err = b.proof(actor, args[1:])
	case "rate":
		reply, err = b.rate(actor, args[1:])
	case "ratings":
		reply, err = b.ratings(strings.Join(args[1:], " "))
	case "batch":
		reply, err = b.batch(actor, args[1:])
	case "donate":
		reply = b.donate()
	default:
		return unknownCommand
	}

	if err != nil {
		if b.Log != nil {
			b.Log.Info("command failed", zap.String("cmd", cmd), zap.String("actor", actor.ID), zap.Error(err))
		}
		return UserMessage(err)
	}
	return reply
}
