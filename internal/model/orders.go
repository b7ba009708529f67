package model

import "strings"

// Canonical attribute names. Declaration order here is the canonical
// display order (after name and the personal attributes).
const (
	AttrName     = "name"
	AttrLocation = "location"
	AttrDiff     = "diff"
	AttrTier     = "tier"
	AttrType     = "type"
	AttrFinder   = "finder"
	AttrTaser    = "taser"
	AttrProver   = "prover"
	AttrServer   = "server"
	AttrExtra    = "extra"
	AttrLinks    = "links"
)

// Personal attributes only appear in per-user ownership records, never in
// the canonical catalog.
const (
	AttrProof     = "proof"
	AttrTimeGiven = "time_given"
)

// Attributes is the canonical attribute set in declaration order.
var Attributes = []string{
	AttrName, AttrLocation, AttrDiff, AttrTier, AttrType,
	AttrFinder, AttrTaser, AttrProver, AttrServer, AttrExtra, AttrLinks,
}

// PersonalAttributes in display order.
var PersonalAttributes = []string{AttrProof, AttrTimeGiven}

// RequiredAttributes must be present on every staged addition.
var RequiredAttributes = []string{AttrName, AttrLocation, AttrDiff, AttrServer, AttrLinks}

// AttributeAliases maps each canonical attribute to the user-typed spellings
// that resolve to it. The canonical name itself always matches. The order of
// entries is part of the frozen contract; do not reorder.
var AttributeAliases = map[string][]string{
	AttrName:     {"n"},
	AttrLocation: {"kingdom", "loc", "k"},
	AttrDiff:     {"difficulty", "d"},
	AttrTier:     {"t"},
	AttrType:     {"ty"},
	AttrFinder:   {"found", "founder", "f"},
	AttrTaser:    {"tased", "tas"},
	AttrProver:   {"proved", "p"},
	AttrServer:   {"s"},
	AttrExtra:    {"desc", "description", "ex", "e", "info", "i"},
	AttrLinks:    {"link", "l"},
}

// ListAttributes holds the list-valued attributes.
var ListAttributes = map[string]bool{
	AttrLocation: true,
	AttrFinder:   true,
	AttrTaser:    true,
	AttrProver:   true,
	AttrExtra:    true,
	AttrLinks:    true,
}

// FreeTextAttributes is the subset of list attributes whose elements also
// match filter values by substring, not just equality.
var FreeTextAttributes = map[string]bool{
	AttrFinder: true,
	AttrTaser:  true,
	AttrProver: true,
	AttrExtra:  true,
	AttrLinks:  true,
}

// LocationOrder is the fixed kingdom enumeration. A record's first location
// element must be one of these, and location sorting is by index here.
// Frozen: both membership and order are contract.
var LocationOrder = []string{
	"Mushroom Kingdom",
	"Cap Kingdom",
	"Cascade Kingdom",
	"Sand Kingdom",
	"Lake Kingdom",
	"Wooded Kingdom",
	"Cloud Kingdom",
	"Lost Kingdom",
	"Metro Kingdom",
	"Snow Kingdom",
	"Seaside Kingdom",
	"Luncheon Kingdom",
	"Ruined Kingdom",
	"Bowser's Kingdom",
	"Moon Kingdom",
	"Dark Side",
	"Darker Side",
	"Odyssey",
}

// TierOrder is the fixed tier enumeration, coarsest difficulty first.
// Frozen order: tier sorting and the main/elite buckets index into it.
var TierOrder = []string{
	"Practice Tier",
	"Beginner",
	"Intermediate",
	"Advanced",
	"Expert",
	"Master",
	"Low Elite",
	"Mid Elite",
	"High Elite",
	"Insanity Elite",
	"God Tier",
	"Hell Tier",
	"Unproven",
}

// MainTierBoundary is the last TierOrder index still counted as "main";
// everything above it except Unproven is "elite".
const MainTierBoundary = 5 // "Master"

// UnprovenTier is the sentinel difficulty for jumps nobody has proven yet.
const UnprovenTier = "Unproven"

// DiffOrder is the fixed difficulty enumeration: 21 fractional tokens in
// half steps, then the tier names from Beginner up, Unproven last. First
// match against this list decides value resolution, and diff sorting is by
// index here. Frozen order.
var DiffOrder = []string{
	"0/10", "0.5/10", "1/10", "1.5/10", "2/10", "2.5/10", "3/10", "3.5/10",
	"4/10", "4.5/10", "5/10", "5.5/10", "6/10", "6.5/10", "7/10", "7.5/10",
	"8/10", "8.5/10", "9/10", "9.5/10", "10/10",
	"Beginner", "Intermediate", "Advanced", "Expert", "Master",
	"Low Elite", "Mid Elite", "High Elite", "Insanity Elite",
	"God Tier", "Hell Tier",
	"Unproven",
}

// EliteDiffs are the tier names that are themselves valid stored diff
// values (alongside the fractional tokens and Unproven).
var EliteDiffs = []string{
	"Low Elite", "Mid Elite", "High Elite", "Insanity Elite", "God Tier", "Hell Tier",
}

// ServerNames lists each canonical server with its accepted alias
// spellings. Resolution walks the list in order and case-insensitively
// substring-matches the typed token against every alias; first canonical
// server that matches wins, so the order is frozen.
var ServerNames = []struct {
	Canonical string
	Aliases   []string
}{
	{"SMO Trickjumping Server", []string{"Main Trickjumping Server", "Main Trickjump Server", "Main Server"}},
	{"Database", []string{"The Trickjump Database", "Database Server", "DB"}},
	{"Extra Elite Server", []string{"ees"}},
	{"Obscure Server", []string{"os"}},
	{"2P Server", []string{"2s", "2ps"}},
	{"Community Server", nil},
	{"Collection Server", nil},
	{"Yellow Dram Server", []string{"yds", "ys"}},
	{"Sky Dram Server", []string{"sds", "sd"}},
}

// LinkScheme is the required prefix for stored link values.
const LinkScheme = "https://"

// MaxNameLength bounds jump names.
const MaxNameLength = 100

// IndexOf returns the index of s in list (case-insensitive), or -1.
func IndexOf(list []string, s string) int {
	for i, e := range list {
		if strings.EqualFold(e, s) {
			return i
		}
	}
	return -1
}
