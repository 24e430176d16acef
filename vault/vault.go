// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Well-known question keys. Any other key is treated as free text.
const (
	KeyDate  = "date"
	KeyColor = "color"
	KeyPlace = "place"
)

// DigestLen is the length of a hex-encoded digest.
const DigestLen = sha256.Size * 2

var (
	ErrMissingAnswer = errors.New("reference answer missing")
	ErrInvalidDigest = errors.New("invalid digest")
	ErrNoQuestions   = errors.New("answers file has no questions")
)

// BlankPolicy decides what happens to a question whose reference answer is absent.
type BlankPolicy int

const (
	// RejectBlank refuses to build a vault with an absent reference answer.
	RejectBlank BlankPolicy = iota
	// AcceptBlank accepts the digest of the empty string for that question,
	// so a blank submission passes it.
	AcceptBlank
)

// dateLayouts are tried in order when expanding a reference date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// Vault holds the accepted digests for every question. It never keeps plaintext
// and is immutable once built, so Verify is safe for concurrent use.
type Vault struct {
	accepted map[string]map[string]struct{}
}

// Digest returns the hex SHA-256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Normalize applies the comparison rule for key: whitespace is trimmed, and
// every key except the date is lower-cased.
func Normalize(key, value string) string {
	value = strings.TrimSpace(value)
	if key == KeyDate {
		return value
	}
	return cases.Lower(language.Und).String(value)
}

// DateVariants lists the textual spellings accepted for one reference date:
// the trimmed input, the input with '-' replaced by '/', and when the input
// parses as a calendar date its YYYY-MM-DD, MM/DD/YY and MM/DD/YYYY forms.
// Order is stable and duplicates are dropped.
func DateVariants(raw string) []string {
	raw = strings.TrimSpace(raw)
	variants := []string{raw}
	add := func(s string) {
		if !slices.Contains(variants, s) {
			variants = append(variants, s)
		}
	}

	add(strings.ReplaceAll(raw, "-", "/"))

	if t, ok := parseDate(raw); ok {
		add(t.Format("2006-01-02"))
		add(t.Format("01/02/06"))
		add(t.Format("01/02/2006"))
	}
	return variants
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// New builds a vault from plaintext reference answers. A reference that is
// empty after trimming counts as absent and is handled according to policy.
func New(refs map[string]string, policy BlankPolicy) (*Vault, error) {
	if len(refs) == 0 {
		return nil, ErrNoQuestions
	}

	v := &Vault{accepted: make(map[string]map[string]struct{}, len(refs))}
	for key, ref := range refs {
		if err := v.addReference(key, ref, policy); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// FromDigests builds a vault from already hashed answers. Every set must be
// non-empty and hold only hex SHA-256 digests.
func FromDigests(digests map[string][]string) (*Vault, error) {
	if len(digests) == 0 {
		return nil, ErrNoQuestions
	}

	v := &Vault{accepted: make(map[string]map[string]struct{}, len(digests))}
	for key, set := range digests {
		if err := v.addDigests(key, set); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *Vault) addReference(key, ref string, policy BlankPolicy) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty question key", ErrMissingAnswer)
	}

	if strings.TrimSpace(ref) == "" {
		if policy != AcceptBlank {
			return fmt.Errorf("%w: %s", ErrMissingAnswer, key)
		}
		v.accept(key, Digest(""))
		return nil
	}

	if key == KeyDate {
		for _, variant := range DateVariants(ref) {
			v.accept(key, Digest(Normalize(key, variant)))
		}
		return nil
	}

	v.accept(key, Digest(Normalize(key, ref)))
	return nil
}

func (v *Vault) addDigests(key string, set []string) error {
	key = strings.TrimSpace(key)
	if key == "" || len(set) == 0 {
		return fmt.Errorf("%w: no digests for %q", ErrMissingAnswer, key)
	}
	for _, d := range set {
		d = strings.ToLower(strings.TrimSpace(d))
		if !isDigest(d) {
			return fmt.Errorf("%w: %s", ErrInvalidDigest, key)
		}
		v.accept(key, d)
	}
	return nil
}

func (v *Vault) accept(key, digest string) {
	set, ok := v.accepted[key]
	if !ok {
		set = make(map[string]struct{})
		v.accepted[key] = set
	}
	set[digest] = struct{}{}
}

func isDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Verify reports whether every question in the vault is answered by
// candidates. Missing candidates count as empty strings. There is no partial
// credit, and the date candidate is compared as typed (trimmed only).
func (v *Vault) Verify(candidates map[string]string) bool {
	if v == nil || len(v.accepted) == 0 {
		return false
	}

	ok := true
	for key, set := range v.accepted {
		d := Digest(Normalize(key, candidates[key]))
		if _, hit := set[d]; !hit {
			ok = false
		}
	}
	return ok
}

// Keys returns the question keys in sorted order.
func (v *Vault) Keys() []string {
	keys := make([]string, 0, len(v.accepted))
	for k := range v.accepted {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Digests returns a copy of the accepted digest sets, each sorted.
func (v *Vault) Digests() map[string][]string {
	out := make(map[string][]string, len(v.accepted))
	for key, set := range v.accepted {
		list := make([]string, 0, len(set))
		for d := range set {
			list = append(list, d)
		}
		slices.Sort(list)
		out[key] = list
	}
	return out
}
