package blogservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFallback is used when normalization strips a title down to nothing,
// e.g. a title made entirely of punctuation.
const slugFallback = "post"

var slugSeparatorRX = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeSlug folds a title to a lowercase ASCII hyphen-separated token:
// diacritics are decomposed and dropped, every run of non-alphanumeric
// characters collapses to a single hyphen.
func normalizeSlug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	folded = strings.ToLower(folded)
	folded = slugSeparatorRX.ReplaceAllString(folded, "-")
	folded = strings.Trim(folded, "-")

	if folded == "" {
		return slugFallback
	}

	return folded
}

// allocateSlug derives a unique slug for title. On update, excludeID keeps the
// blog's own row out of the uniqueness check so an unchanged title keeps its
// slug. When the candidate is taken a millisecond timestamp is appended and the
// result is accepted without re-checking; a collision after suffixing would
// need two allocations of the same normalized title within the same
// millisecond, which we accept as a known limitation rather than retry.
func (s *BlogService) allocateSlug(ctx context.Context, title string, excludeID int) (string, error) {
	slug := normalizeSlug(title)

	taken, err := s.m.slugTaken(ctx, slug, excludeID)
	if err != nil {
		return "", err
	}

	if taken {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	return slug, nil
}
