package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"repairshop/internal/domain/entities"
)

const (
	PrefixOrder     = "ORD"
	PrefixRepairJob = "TH"

	// MaxSequence is the largest number that fits the 4-digit field.
	MaxSequence = 9999

	identifierDigits = 8 // YY + MM + SEQ4
)

var prefixes = map[entities.EntityKind]string{
	entities.EntityKindOrder:     PrefixOrder,
	entities.EntityKindRepairJob: PrefixRepairJob,
}

// PrefixFor returns the identifier prefix of a kind.
func PrefixFor(kind entities.EntityKind) (string, error) {
	p, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
	return p, nil
}

// SequenceKey scopes sequence numbers to one kind and calendar month.
type SequenceKey struct {
	Kind   entities.EntityKind
	Year2  int
	Month2 int
}

// KeyFor derives the sequence key for a record created at t (UTC).
func KeyFor(kind entities.EntityKind, t time.Time) SequenceKey {
	t = t.UTC()
	return SequenceKey{Kind: kind, Year2: t.Year() % 100, Month2: int(t.Month())}
}

// String renders the key used by counter stores, e.g. "order#2401".
func (k SequenceKey) String() string {
	return fmt.Sprintf("%s#%02d%02d", k.Kind, k.Year2, k.Month2)
}

// Identifier is the parsed form of a display identifier.
type Identifier struct {
	Prefix   string
	Year2    int
	Month2   int
	Sequence int64
}

func (id Identifier) String() string {
	s, err := FormatIdentifier(id.Prefix, id.Year2, id.Month2, id.Sequence)
	if err != nil {
		return ""
	}
	return s
}

// FormatIdentifier renders <PREFIX><YY><MM><SEQ4>.
func FormatIdentifier(prefix string, year2, month2 int, seq int64) (string, error) {
	if seq > MaxSequence {
		return "", fmt.Errorf("%w: %d exceeds %d", ErrSequenceOverflow, seq, MaxSequence)
	}
	if prefix == "" || year2 < 0 || year2 > 99 || month2 < 1 || month2 > 12 || seq < 1 {
		return "", fmt.Errorf("%w: prefix=%q year=%d month=%d seq=%d", ErrMalformedIdentifier, prefix, year2, month2, seq)
	}
	return fmt.Sprintf("%s%02d%02d%04d", prefix, year2, month2, seq), nil
}

// ParseIdentifier accepts any known prefix followed by exactly eight digits.
func ParseIdentifier(s string) (Identifier, error) {
	for _, p := range []string{PrefixOrder, PrefixRepairJob} {
		if strings.HasPrefix(s, p) {
			return parseWithPrefix(p, s)
		}
	}
	return Identifier{}, fmt.Errorf("%w: %q has no known prefix", ErrMalformedIdentifier, s)
}

// ParseIdentifierFor parses s and requires it to belong to kind.
func ParseIdentifierFor(kind entities.EntityKind, s string) (Identifier, error) {
	p, err := PrefixFor(kind)
	if err != nil {
		return Identifier{}, err
	}
	if !strings.HasPrefix(s, p) {
		return Identifier{}, fmt.Errorf("%w: %q is not a %s identifier", ErrMalformedIdentifier, s, kind)
	}
	return parseWithPrefix(p, s)
}

func parseWithPrefix(prefix, s string) (Identifier, error) {
	digits := s[len(prefix):]
	if len(digits) != identifierDigits {
		return Identifier{}, fmt.Errorf("%w: %q must have %d digits after %s", ErrMalformedIdentifier, s, identifierDigits, prefix)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Identifier{}, fmt.Errorf("%w: %q contains non-digit %q", ErrMalformedIdentifier, s, r)
		}
	}

	year2, _ := strconv.Atoi(digits[0:2])
	month2, _ := strconv.Atoi(digits[2:4])
	seq, _ := strconv.ParseInt(digits[4:8], 10, 64)
	if month2 < 1 || month2 > 12 {
		return Identifier{}, fmt.Errorf("%w: %q has month %02d", ErrMalformedIdentifier, s, month2)
	}
	if seq < 1 {
		return Identifier{}, fmt.Errorf("%w: %q has sequence 0", ErrMalformedIdentifier, s)
	}
	return Identifier{Prefix: prefix, Year2: year2, Month2: month2, Sequence: seq}, nil
}
