package schema

import (
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
)

// diffBands maps inclusive DiffOrder index ranges of the fractional tokens
// to their tier. Elite names and Unproven are their own tier.
var diffBands = []struct {
	lastIndex int // last DiffOrder index in the band
	tier      string
}{
	{2, "Practice Tier"},  // 0/10 .. 1/10
	{6, "Beginner"},       // 1.5/10 .. 3/10
	{10, "Intermediate"},  // 3.5/10 .. 5/10
	{14, "Advanced"},      // 5.5/10 .. 7/10
	{17, "Expert"},        // 7.5/10 .. 8.5/10
	{20, "Master"},        // 9/10 .. 10/10
}

// DeriveTier computes the tier band for a canonical diff value. Tier is
// never caller-supplied; this is the only way it is ever set.
func DeriveTier(diff string) (string, error) {
	if strings.EqualFold(diff, model.UnprovenTier) {
		return model.UnprovenTier, nil
	}
	for _, elite := range model.EliteDiffs {
		if strings.EqualFold(diff, elite) {
			return elite, nil
		}
	}
	i := model.IndexOf(model.DiffOrder, diff)
	if i < 0 || i > 20 {
		return "", fmt.Errorf("cannot derive tier from diff %q", diff)
	}
	for _, band := range diffBands {
		if i <= band.lastIndex {
			return band.tier, nil
		}
	}
	return "", fmt.Errorf("cannot derive tier from diff %q", diff)
}

// ValidDiff reports whether a canonical diff value may be stored on a
// record: a fractional token, an elite tier name, or Unproven. The
// intermediate tier names in DiffOrder resolve for filtering but are not
// storable.
func ValidDiff(diff string) bool {
	if strings.EqualFold(diff, model.UnprovenTier) {
		return true
	}
	for _, elite := range model.EliteDiffs {
		if strings.EqualFold(diff, elite) {
			return true
		}
	}
	i := model.IndexOf(model.DiffOrder, diff)
	return i >= 0 && i <= 20
}

// TierBucket classifies a tier name into the main or elite bucket.
// Unproven belongs to neither.
func TierBucket(tier string) string {
	i := model.IndexOf(model.TierOrder, tier)
	switch {
	case i < 0 || model.TierOrder[i] == model.UnprovenTier:
		return ""
	case i <= model.MainTierBoundary:
		return BucketMain
	default:
		return BucketElite
	}
}
