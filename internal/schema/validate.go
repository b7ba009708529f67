package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
)

// ErrExplicitTier is returned when a caller tries to supply tier directly.
// Tier is always derived from diff.
var ErrExplicitTier = errors.New("tier is derived from diff and cannot be set directly")

// ValidateRecord checks a full record as staged for addition: every
// required attribute present, every present value canonical.
func ValidateRecord(r *model.Record) error {
	if r.Tier != "" {
		return ErrExplicitTier
	}
	for _, attr := range model.RequiredAttributes {
		v, _ := r.Get(attr)
		if v.IsZero() {
			return fmt.Errorf("missing required attribute %q", attr)
		}
	}
	return validateValues(r)
}

// ValidatePatch checks a batch-edit patch: at least one attribute besides
// name, no explicit tier, no required attribute cleared to empty, and every
// non-empty value canonical.
func ValidatePatch(p model.Patch) error {
	if _, ok := p[model.AttrTier]; ok {
		return ErrExplicitTier
	}
	changed := 0
	for attr, v := range p {
		if attr == model.AttrName {
			continue
		}
		if v.IsZero() {
			for _, req := range model.RequiredAttributes {
				if attr == req {
					return fmt.Errorf("required attribute %q cannot be cleared", attr)
				}
			}
		}
		changed++
	}
	if changed == 0 {
		return errors.New("edit must change at least one attribute besides name")
	}

	r := &model.Record{}
	for attr, v := range p {
		if v.IsZero() {
			continue
		}
		if err := r.Set(attr, v); err != nil {
			return err
		}
	}
	return validateValues(r)
}

func validateValues(r *model.Record) error {
	if len(r.Name) > model.MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidValue, model.MaxNameLength)
	}
	if len(r.Location) > 0 {
		if model.IndexOf(model.LocationOrder, r.Location[0]) < 0 {
			return fmt.Errorf("%w: first location %q is not a known kingdom", ErrInvalidValue, r.Location[0])
		}
	}
	if r.Diff != "" && !ValidDiff(r.Diff) {
		return fmt.Errorf("%w: %q is not a valid difficulty", ErrInvalidValue, r.Diff)
	}
	if r.Server != "" {
		known := false
		for _, srv := range model.ServerNames {
			if strings.EqualFold(srv.Canonical, r.Server) {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q is not a known server", ErrInvalidValue, r.Server)
		}
	}
	for _, link := range r.Links {
		if !strings.HasPrefix(link, model.LinkScheme) {
			return fmt.Errorf("%w: link %q must start with %s", ErrInvalidValue, link, model.LinkScheme)
		}
	}
	return nil
}
