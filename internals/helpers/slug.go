package helper

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into a [a-z0-9-] slug: strips diacritics,
// compresses "-", trims the ends, enforces maxLen (default 100 if <=0),
// falls back to "tutor" when nothing survives.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// Strip diacritics (é → e, etc)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	// Keep [a-z0-9-]
	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "tutor"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = string(rs[:maxLen])
		s = strings.Trim(s, "-")
	}
	if s == "" {
		s = "tutor"
	}
	return s
}

// OwnerSuffix derives a short stable hex suffix from an owner id.
// Used to disambiguate slug collisions between different owners without
// making the slug depend on insertion order. Zero-padded so small hash
// values still yield six characters.
func OwnerSuffix(ownerID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return fmt.Sprintf("%08x", h.Sum32())[:6]
}

// EnsureOwnedSlug keeps baseSlug when it is free or already owned by
// ownerID (case-insensitive); when another owner holds it, returns
// baseSlug plus an OwnerSuffix. ownerColumn lets the same helper serve
// any table keyed by an external owner id.
func EnsureOwnedSlug(
	ctx context.Context,
	db *gorm.DB,
	table, slugColumn, ownerColumn string,
	baseSlug, ownerID string,
) (string, error) {
	var count int64
	err := db.WithContext(ctx).Table(table).
		Where(fmt.Sprintf("LOWER(%s) = ?", slugColumn), strings.ToLower(baseSlug)).
		Where(fmt.Sprintf("%s <> ?", ownerColumn), ownerID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count == 0 {
		return baseSlug, nil
	}
	return baseSlug + "-" + OwnerSuffix(ownerID), nil
}
