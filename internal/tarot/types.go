package tarot

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// SeatCount is the number of players seated at a five-player Tarot table.
const SeatCount = 5

// Player is a registered player. The ID is stable, the name may change.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"nom"`
}

// Match is a sequence of hands played by the same five players. The order of
// Players is fixed at creation and is the index space of every hand.
type Match struct {
	ID        string   `json:"id"`
	CreatedAt int64    `json:"createdAt"`
	Players   []string `json:"joueurs"`
	Hands     []Hand   `json:"donnes"`
}

// Hand is one dealt round with its computed score vector.
type Hand struct {
	ID           string                   `json:"id"`
	CreatedAt    int64                    `json:"createdAt"`
	Taker        int                      `json:"preneur"`
	Partner      int                      `json:"appele"`
	Bid          Bid                      `json:"contrat"`
	AttackPoints int                      `json:"pointsAtq"`
	AttackTrumps int                      `json:"attaqueNbBouts"`
	LastTrick    Optional[LastTrickBonus] `json:"petitAuBout"`
	Handfuls     []Handful                `json:"poignees"`
	Miseres      []int                    `json:"miseres"`
	Slam         Optional[SlamOutcome]    `json:"chelem"`
	Scores       []int                    `json:"scores"`

	// rawBid is the stored contrat token when it is not a known bid.
	rawBid string
}

// BidToken returns the contrat token of the hand, including a stored token
// that is not a known bid.
func (h Hand) BidToken() string {
	if h.Bid.Valid() {
		return h.Bid.String()
	}
	return h.rawBid
}

// Solo reports whether the taker played alone against the four others.
func (h Hand) Solo() bool {
	return h.Taker == h.Partner
}

// LastTrickBonus records who held the petit on the last trick and whether it was won.
type LastTrickBonus struct {
	Holder int  `json:"index"`
	Won    bool `json:"gagne"`
}

// Handful is a declared run of trumps by the player at Index.
// An unknown stored type decodes as NoHandful and keeps its token.
type Handful struct {
	Index int         `json:"index"`
	Size  HandfulSize `json:"type"`

	rawSize string
}

// Token returns the stored type token of the handful.
func (hf Handful) Token() string {
	if hf.rawSize != "" {
		return hf.rawSize
	}
	return hf.Size.String()
}

// SlamOutcome is present only when a slam was attempted or happened.
type SlamOutcome struct {
	Announced bool `json:"annonce"`
	Succeeded bool `json:"succes"`
}

// History is the full persisted list of matches, oldest first.
type History struct {
	Matches []Match `json:"parties"`
}

// IndexOf returns the seat of name in players, or -1.
func IndexOf(players []string, name string) int {
	for i, p := range players {
		if p == name {
			return i
		}
	}
	return -1
}

// handWire is the stored form of a Hand. Enum fields are plain tokens so a
// hand with a token this version does not know is kept as it was written.
type handWire struct {
	ID           string                   `json:"id"`
	CreatedAt    int64                    `json:"createdAt"`
	Taker        int                      `json:"preneur"`
	Partner      int                      `json:"appele"`
	Bid          string                   `json:"contrat"`
	AttackPoints int                      `json:"pointsAtq"`
	AttackTrumps int                      `json:"attaqueNbBouts"`
	LastTrick    Optional[LastTrickBonus] `json:"petitAuBout"`
	Handfuls     []handfulWire            `json:"poignees"`
	Miseres      []int                    `json:"miseres"`
	Slam         Optional[SlamOutcome]    `json:"chelem"`
	Scores       []int                    `json:"scores"`
}

type handfulWire struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
}

// wire writes empty lists instead of null so documents stay readable by
// decoders that reject null for list fields.
func (h Hand) wire() handWire {
	w := handWire{
		ID:           h.ID,
		CreatedAt:    h.CreatedAt,
		Taker:        h.Taker,
		Partner:      h.Partner,
		Bid:          h.BidToken(),
		AttackPoints: h.AttackPoints,
		AttackTrumps: h.AttackTrumps,
		LastTrick:    h.LastTrick,
		Handfuls:     make([]handfulWire, 0, len(h.Handfuls)),
		Miseres:      h.Miseres,
		Slam:         h.Slam,
		Scores:       h.Scores,
	}
	for _, hf := range h.Handfuls {
		w.Handfuls = append(w.Handfuls, handfulWire{Index: hf.Index, Type: hf.Token()})
	}
	if w.Miseres == nil {
		w.Miseres = []int{}
	}
	if w.Scores == nil {
		w.Scores = []int{}
	}
	return w
}

// hand never fails on tokens: unknown ones are kept raw and skipped by
// scoring and statistics.
func (w handWire) hand() Hand {
	h := Hand{
		ID:           w.ID,
		CreatedAt:    w.CreatedAt,
		Taker:        w.Taker,
		Partner:      w.Partner,
		AttackPoints: w.AttackPoints,
		AttackTrumps: w.AttackTrumps,
		LastTrick:    w.LastTrick,
		Handfuls:     make([]Handful, 0, len(w.Handfuls)),
		Miseres:      w.Miseres,
		Slam:         w.Slam,
		Scores:       w.Scores,
	}
	if bid, err := ParseBid(w.Bid); err == nil {
		h.Bid = bid
	} else {
		h.rawBid = w.Bid
	}
	for _, hf := range w.Handfuls {
		size, err := ParseHandfulSize(hf.Type)
		if err != nil {
			h.Handfuls = append(h.Handfuls, Handful{Index: hf.Index, Size: NoHandful, rawSize: hf.Type})
			continue
		}
		h.Handfuls = append(h.Handfuls, Handful{Index: hf.Index, Size: size})
	}
	if h.Miseres == nil {
		h.Miseres = []int{}
	}
	if h.Scores == nil {
		h.Scores = []int{}
	}
	return h
}

func (h Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.wire())
}

func (h *Hand) UnmarshalJSON(data []byte) error {
	var w handWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*h = w.hand()
	return nil
}

func (h Hand) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(h.wire())
}

func (h *Hand) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w handWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*h = w.hand()
	return nil
}

func (m Match) MarshalJSON() ([]byte, error) {
	type wire Match
	w := wire(m)
	if w.Players == nil {
		w.Players = []string{}
	}
	if w.Hands == nil {
		w.Hands = []Hand{}
	}
	return json.Marshal(w)
}

func (h History) MarshalJSON() ([]byte, error) {
	type wire History
	w := wire(h)
	if w.Matches == nil {
		w.Matches = []Match{}
	}
	return json.Marshal(w)
}
