package bot

import (
	"context"
	"fmt"

	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/query"
	"github.com/jumpedia/jumpedia/internal/ui"
)

// pasteThreshold is the row count above which the table goes to the paste
// service instead of inline chat.
const pasteThreshold = 15

// list parses and runs a query, then renders the results. Large tables go
// out as a paste link when the paste client is configured.
func (b *Bot) list(ctx context.Context, actor identity.Actor, args []string) (string, error) {
	q, err := query.Parse(args)
	if err != nil {
		return "", err
	}

	result, err := b.Queries.Run(q, actor.ID)
	if err != nil {
		return "", err
	}

	if result.Count == 0 {
		return "No jumps with that criteria were found!", nil
	}

	table := ui.Table(result.Columns, result.Rows)
	found := fmt.Sprintf("Found %d matching jump%s!", result.Count, plural(result.Count))

	if b.Paste != nil && result.Count > pasteThreshold {
		link, err := b.Paste.Create(ctx, table)
		if err != nil {
			return "Couldn't reach the paste service...\nTry again later!", nil
		}
		return found + "\n" + link, nil
	}

	return found + "\n" + table, nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
