package tarot

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownToken is returned when a persisted enum token is not recognised.
var ErrUnknownToken = errors.New("unknown token")

// Bid is the contract announced by the taker.
type Bid uint8

const (
	Small Bid = iota + 1
	Guard
	GuardWithout
	GuardAgainst
	Slam
)

// Bids lists every bid, lowest first.
var Bids = []Bid{Small, Guard, GuardWithout, GuardAgainst, Slam}

var bidTokens = map[Bid]string{
	Small:        "PETITE",
	Guard:        "GARDE",
	GuardWithout: "GARDE_SANS",
	GuardAgainst: "GARDE_CONTRE",
	Slam:         "CHELEM",
}

// bidConfigKeys are the keys of the "multiplicateurs" table in constantes.json.
var bidConfigKeys = map[Bid]string{
	Small:        "Petite",
	Guard:        "Garde",
	GuardWithout: "GardeSans",
	GuardAgainst: "GardeContre",
	Slam:         "Chelem",
}

// String returns the persisted token of the bid.
func (b Bid) String() string {
	if t, ok := bidTokens[b]; ok {
		return t
	}
	return fmt.Sprintf("Bid(%d)", uint8(b))
}

// ConfigKey returns the key used for the bid in the multipliers table.
func (b Bid) ConfigKey() string {
	return bidConfigKeys[b]
}

// Valid reports whether b is one of the five bids.
func (b Bid) Valid() bool {
	_, ok := bidTokens[b]
	return ok
}

// ParseBid accepts either the persisted token (GARDE_SANS) or the
// configuration key (GardeSans).
func ParseBid(s string) (Bid, error) {
	for b, t := range bidTokens {
		if t == s || bidConfigKeys[b] == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("bid %q: %w", s, ErrUnknownToken)
}

func (b Bid) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("bid %d: %w", uint8(b), ErrUnknownToken)
	}
	return []byte(b.String()), nil
}

func (b *Bid) UnmarshalText(text []byte) error {
	parsed, err := ParseBid(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b Bid) EncodeMsgpack(enc *msgpack.Encoder) error {
	text, err := b.MarshalText()
	if err != nil {
		return err
	}
	return enc.EncodeString(string(text))
}

func (b *Bid) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return b.UnmarshalText([]byte(s))
}

// HandfulSize is the size of a declared handful (poignée).
type HandfulSize uint8

const (
	NoHandful HandfulSize = iota
	SimpleHandful
	DoubleHandful
	TripleHandful
)

// HandfulSizes lists the three real sizes, smallest first.
var HandfulSizes = []HandfulSize{SimpleHandful, DoubleHandful, TripleHandful}

var handfulTokens = map[HandfulSize]string{
	NoHandful:     "NONE",
	SimpleHandful: "SIMPLE",
	DoubleHandful: "DOUBLE",
	TripleHandful: "TRIPLE",
}

func (s HandfulSize) String() string {
	if t, ok := handfulTokens[s]; ok {
		return t
	}
	return fmt.Sprintf("HandfulSize(%d)", uint8(s))
}

// ParseHandfulSize parses NONE, SIMPLE, DOUBLE or TRIPLE.
func ParseHandfulSize(s string) (HandfulSize, error) {
	for size, t := range handfulTokens {
		if t == s {
			return size, nil
		}
	}
	return 0, fmt.Errorf("handful %q: %w", s, ErrUnknownToken)
}

func (s HandfulSize) MarshalText() ([]byte, error) {
	t, ok := handfulTokens[s]
	if !ok {
		return nil, fmt.Errorf("handful %d: %w", uint8(s), ErrUnknownToken)
	}
	return []byte(t), nil
}

func (s *HandfulSize) UnmarshalText(text []byte) error {
	parsed, err := ParseHandfulSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s HandfulSize) EncodeMsgpack(enc *msgpack.Encoder) error {
	text, err := s.MarshalText()
	if err != nil {
		return err
	}
	return enc.EncodeString(string(text))
}

func (s *HandfulSize) DecodeMsgpack(dec *msgpack.Decoder) error {
	str, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(str))
}
