package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/index"
	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/ui"
)

// HelpText is the command reference, markdown so the console session can
// render it nicely.
const HelpText = `# Jumpedia commands

- ` + "`!info <jump>`" + ` - everything about one jump
- ` + "`!list <all|mine|user-id> [only <attr> <value> (and|or <attr> <value>)...] [by <attr>...] [+|-]`" + ` - query the catalog
- ` + "`!give <jump> [proof-url]`" + ` - claim a jump (optionally with proof)
- ` + "`!del <jump>`" + ` - unclaim a jump
- ` + "`!proof get|set <jump> [url]`" + ` - read or set your proof link
- ` + "`!rate diff|stars <jump> <value>`" + ` - rate a jump
- ` + "`!ratings <jump>`" + ` - average ratings of a jump
- ` + "`!batch ...`" + ` - staged catalog changes (moderators)
- ` + "`!donate`" + `
`

func (b *Bot) help() string {
	return HelpText
}

func (b *Bot) donate() string {
	return "**To the donation page:**\nhttps://paypal.me/JumpediaBot"
}

func (b *Bot) info(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Please enter a jump to get the info of!"
	}
	rec, ok := b.Catalog.Get(strings.ToLower(name))
	if !ok {
		return "No jump found!"
	}
	return ui.Info(rec)
}

// timeGivenFormat is the stored claim timestamp layout.
const timeGivenFormat = "2006-01-02 15:04:05 (UTC)"

// give claims a jump for the actor. A trailing https:// argument counts
// as the proof link; everything before it is the jump name.
func (b *Bot) give(actor identity.Actor, args []string) (string, error) {
	if len(args) == 0 {
		return "Make sure to enter the jump you want to claim!", nil
	}

	proof := ""
	nameArgs := args
	if strings.HasPrefix(args[len(args)-1], model.LinkScheme) {
		proof = args[len(args)-1]
		nameArgs = args[:len(args)-1]
	}

	rec, ok := b.Catalog.Get(strings.ToLower(strings.Join(nameArgs, " ")))
	if !ok {
		return msgNoSuchJump, nil
	}

	greeting := ""
	hasRecords, err := b.Index.HasRecords(actor.ID)
	if err != nil {
		return "", err
	}
	if !hasRecords {
		greeting = fmt.Sprintf("**New user verified!**\nThanks for using Jumpedia, %s!\n\n", actor.Name)
	}

	if err := b.Index.Give(actor.ID, rec.Key(), proof, b.now().Format(timeGivenFormat)); err != nil {
		return "", err
	}

	if b.Batches != nil && b.Batches.Audit != nil {
		_ = b.Batches.Audit.LogOwnership("give", actor.ID, rec.Key())
	}

	reply := greeting + msgJumpGiven
	if proof != "" {
		reply += "\n" + msgProofSet
	}
	return reply, nil
}

func (b *Bot) del(actor identity.Actor, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if !b.Catalog.Exists(key) {
		return msgNoSuchJump, nil
	}
	if err := b.Index.Del(actor.ID, key); err != nil {
		return "", err
	}
	if b.Batches != nil && b.Batches.Audit != nil {
		_ = b.Batches.Audit.LogOwnership("del", actor.ID, key)
	}
	return "Jump successfully removed!", nil
}

// proof reads or updates the proof link of an owned jump. Setting proof
// on a jump the actor does not own yet claims it with the proof attached.
func (b *Bot) proof(actor identity.Actor, args []string) (string, error) {
	if len(args) == 0 {
		return "Expected `get` or `set` after `proof`!", nil
	}

	switch strings.ToLower(args[0]) {
	case "get":
		key := strings.ToLower(strings.Join(args[1:], " "))
		if !b.Catalog.Exists(key) {
			return msgNoSuchJump, nil
		}
		proof, err := b.Index.GetProof(actor.ID, key)
		if err != nil {
			return "", err
		}
		return "Here's your proof for that jump:\n" + proof, nil

	case "set":
		if len(args) < 3 {
			return "Make sure to enter both the jump name & the URL to use as proof!", nil
		}
		proof := args[len(args)-1]
		if !strings.HasPrefix(proof, model.LinkScheme) {
			return "Please enter a valid `https://...` URL at the end!", nil
		}
		key := strings.ToLower(strings.Join(args[1:len(args)-1], " "))
		if !b.Catalog.Exists(key) {
			return msgNoSuchJump, nil
		}

		err := b.Index.SetProof(actor.ID, key, proof)
		if errors.Is(err, index.ErrNotOwned) {
			// Setting proof on an unclaimed jump claims it too.
			return b.give(actor, append(args[1:len(args)-1], proof))
		}
		if err != nil {
			return "", err
		}
		if b.Batches != nil && b.Batches.Audit != nil {
			_ = b.Batches.Audit.LogOwnership("proof", actor.ID, key)
		}
		return msgProofSet, nil

	default:
		return fmt.Sprintf("Expected `get` or `set` instead of `%s`!", args[0]), nil
	}
}
