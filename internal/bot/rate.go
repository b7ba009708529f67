package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jumpedia/jumpedia/internal/identity"
	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// rateable describes one key users can rate jumps by. Internal values are
// strings so they average uniformly: a DiffOrder index for diff, 1-5 for
// stars.
type rateable struct {
	preview    string
	toInternal func(val string) (string, bool)
	toText     func(internal string) string
	avgToText  func(avg float64) string
}

var rateables = map[string]rateable{
	"diff": {
		preview:    "Difficulty",
		toInternal: diffToInternal,
		toText:     diffToText,
		avgToText:  diffAvgToText,
	},
	"stars": {
		preview:    "Stars",
		toInternal: starsToInternal,
		toText:     func(internal string) string { return internal + "/5" },
		avgToText:  starsAvgToText,
	},
}

func diffToInternal(val string) (string, bool) {
	canonical, err := schema.ResolveValue(model.AttrDiff, val)
	if err != nil || canonical == model.UnprovenTier {
		return "", false
	}
	i := model.IndexOf(model.DiffOrder, canonical)
	if i < 0 {
		return "", false
	}
	return strconv.Itoa(i), true
}

func diffToText(internal string) string {
	i, err := strconv.Atoi(internal)
	if err != nil || i < 0 || i >= len(model.DiffOrder) {
		return internal
	}
	return model.DiffOrder[i]
}

// diffAvgToText renders an average DiffOrder index. Averages close to an
// entry print it alone; averages between entries print the band.
func diffAvgToText(avg float64) string {
	rounded := int(math.Round(avg))
	if rounded < 0 {
		rounded = 0
	}
	if rounded >= len(model.DiffOrder) {
		rounded = len(model.DiffOrder) - 1
	}
	difference := avg - float64(rounded)

	if difference < -1.0/3 && rounded > 0 {
		return model.DiffOrder[rounded-1] + " - " + model.DiffOrder[rounded]
	}
	if difference > 1.0/3 && rounded < len(model.DiffOrder)-1 {
		return model.DiffOrder[rounded] + " - " + model.DiffOrder[rounded+1]
	}
	return model.DiffOrder[rounded]
}

// starsToInternal accepts "4" or "4/5", 1 through 5.
func starsToInternal(val string) (string, bool) {
	head, _, _ := strings.Cut(val, "/")
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 || n > 5 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func starsAvgToText(avg float64) string {
	truncated := math.Trunc(avg*100) / 100
	return strconv.FormatFloat(truncated, 'f', -1, 64) + "/5"
}

// rate stores one rating: `rate diff|stars <jump> <value>`.
func (b *Bot) rate(actor identity.Actor, args []string) (string, error) {
	if len(args) < 3 {
		return "Make sure to enter the rateable key, the jump and your rating!", nil
	}

	key := strings.ToLower(args[0])
	r, ok := rateables[key]
	if !ok {
		return fmt.Sprintf("You can only rate jumps by their difficulty with `diff` or by how good of a role they would be with `stars` instead of `%s`!", args[0]), nil
	}

	jump := strings.ToLower(strings.Join(args[1:len(args)-1], " "))
	if !b.Catalog.Exists(jump) {
		return msgNoSuchJump, nil
	}

	internal, ok := r.toInternal(args[len(args)-1])
	if !ok {
		return fmt.Sprintf("`%s` is not a valid rating for `%s`!", args[len(args)-1], key), nil
	}

	previous, err := b.Index.Rate(jump, actor.ID, key, internal)
	if err != nil {
		return "", err
	}

	if b.Batches != nil && b.Batches.Audit != nil {
		_ = b.Batches.Audit.LogOwnership("rate", actor.ID, jump)
	}

	if previous == internal {
		return "Rating is the same as before!", nil
	}
	if previous == "" {
		return "Jump has been rated!", nil
	}
	return fmt.Sprintf("Jump has been re-rated from `%s` to `%s`!", r.toText(previous), r.toText(internal)), nil
}

// ratings renders the per-key averages of a jump.
func (b *Bot) ratings(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "Please enter a jump to get the rating of!", nil
	}

	jump := strings.ToLower(strings.TrimSpace(name))
	rec, ok := b.Catalog.Get(jump)
	if !ok {
		return msgNoSuchJump, nil
	}

	summaries, err := b.Index.Ratings(jump)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return "That jump has no ratings so far!\nBe the first to rate it! :D", nil
	}

	var bld strings.Builder
	fmt.Fprintf(&bld, "**Average ratings for __%s__**", rec.Name)
	for _, s := range summaries {
		r, ok := rateables[s.Key]
		if !ok {
			continue
		}
		fmt.Fprintf(&bld, "\n%s: %s [%d]", r.preview, r.avgToText(s.Average), s.Count)
	}
	return bld.String(), nil
}
