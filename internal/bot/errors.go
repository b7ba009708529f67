package bot

import (
	"errors"

	"github.com/jumpedia/jumpedia/internal/batch"
	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/index"
	"github.com/jumpedia/jumpedia/internal/query"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// Shared reply strings, worded like the bot has always worded them.
const (
	msgNoSuchJump = "No jump with that name exists!"
	msgJumpGiven  = "Jump successfully given!"
	msgProofSet   = "Proof successfully set!"
)

// UserMessage turns any domain error into the reply the user sees. Every
// error reaching the dispatcher goes through here; nothing leaks a Go
// error string unless no friendlier mapping exists.
func UserMessage(err error) string {
	var syntaxErr *query.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Error()
	}

	var limited *query.RateLimitedError
	if errors.As(err, &limited) {
		return limited.Error()
	}

	var report *batch.ValidationReport
	if errors.As(err, &report) {
		return "The batch did not validate:\n" + report.Error()
	}

	switch {
	case errors.Is(err, identity.ErrPermissionDenied):
		return "You don't have permission to do that!"
	case errors.Is(err, batch.ErrNotFound):
		return "No batch with that hash exists!"
	case errors.Is(err, batch.ErrLocked):
		return "That batch is locked and can't be changed anymore!"
	case errors.Is(err, batch.ErrNotUnfinished):
		return "That batch is finished; unfinish it first to change its contents!"
	case errors.Is(err, index.ErrAlreadyOwned):
		return "You already have that jump!"
	case errors.Is(err, index.ErrNotOwned):
		return "You don't have that jump!"
	case errors.Is(err, index.ErrNoProof):
		return "You don't have any proof set for that jump!"
	case errors.Is(err, schema.ErrUnknownAttribute),
		errors.Is(err, schema.ErrInvalidValue),
		errors.Is(err, schema.ErrExplicitTier):
		return err.Error()
	}

	return err.Error()
}
