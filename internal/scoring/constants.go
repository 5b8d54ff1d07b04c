package scoring

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tarota5/scores/internal/tarot"
)

//go:embed constantes.json
var bundledConstants []byte

// SlamValues are the slam bonus amounts.
type SlamValues struct {
	AnnouncedSuccess   int `json:"annonce_reussi"`
	UnannouncedSuccess int `json:"non_annonce_reussi"`
	AnnouncedFailure   int `json:"annonce_rate"`
}

// Constants is the scoring configuration document (constantes.json).
type Constants struct {
	Thresholds        []int          `json:"seuils_bouts"`
	Multipliers       map[string]int `json:"multiplicateurs"`
	LastTrickBonus    int            `json:"petit_au_bout"`
	Slam              SlamValues     `json:"chelem"`
	MiserePenalty     int            `json:"misere_penalite"`
	Base              int            `json:"base_const"`
	HandfulValues     map[string]int `json:"poignee_values"`
	HandfulThresholds map[string]int `json:"poignee_atouts,omitempty"`

	// HandfulToDeclarer credits a handful to the declarer's side instead of
	// the side that won the contract.
	HandfulToDeclarer bool `json:"poignee_au_declarant,omitempty"`
}

// Fallback is used when no constants document can be read. The values are
// the ones the application always shipped as its last resort, including a
// zero slam multiplier.
func Fallback() Constants {
	return Constants{
		Thresholds: []int{56, 51, 41, 36},
		Multipliers: map[string]int{
			"Petite":      1,
			"Garde":       2,
			"GardeSans":   4,
			"GardeContre": 6,
			"Chelem":      0,
		},
		LastTrickBonus: 10,
		Slam: SlamValues{
			AnnouncedSuccess:   400,
			UnannouncedSuccess: 200,
			AnnouncedFailure:   -200,
		},
		MiserePenalty: 10,
		Base:          25,
		HandfulValues: map[string]int{
			"NONE":   0,
			"SIMPLE": 20,
			"DOUBLE": 30,
			"TRIPLE": 40,
		},
	}
}

// Parse decodes a constants document. misere_penalite defaults to 10.
func Parse(data []byte) (Constants, error) {
	c := Constants{MiserePenalty: 10}
	if err := json.Unmarshal(data, &c); err != nil {
		return Constants{}, fmt.Errorf("failed to parse constants: %w", err)
	}
	if len(c.Thresholds) == 0 {
		return Constants{}, fmt.Errorf("failed to parse constants: seuils_bouts is empty")
	}
	return c, nil
}

// Bundled returns the constants shipped with the binary.
func Bundled() Constants {
	c, err := Parse(bundledConstants)
	if err != nil {
		log.Error("Bundled constants are unreadable, using fallback", "error", err)
		return Fallback()
	}
	return c
}

// Load reads constants from path. An empty path selects the bundled
// document. A missing or unparseable file falls back to Fallback().
func Load(path string) Constants {
	if path == "" {
		return Bundled()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Constants file not readable, using fallback", "path", path, "error", err)
		return Fallback()
	}
	c, err := Parse(data)
	if err != nil {
		log.Warn("Constants file invalid, using fallback", "path", path, "error", err)
		return Fallback()
	}
	log.Debug("Loaded constants", "path", path)
	return c
}

// Multiplier returns the multiplier of bid. A missing entry falls back to the
// Garde multiplier, then to 2.
func (c Constants) Multiplier(bid tarot.Bid) int {
	if m, ok := c.Multipliers[bid.ConfigKey()]; ok {
		return m
	}
	if m, ok := c.Multipliers[tarot.Guard.ConfigKey()]; ok {
		return m
	}
	return 2
}

// Threshold returns the points the attack needs with the given number of
// bouts, clamping the count into the table.
func (c Constants) Threshold(trumps int) int {
	if trumps < 0 {
		trumps = 0
	}
	if trumps > len(c.Thresholds)-1 {
		trumps = len(c.Thresholds) - 1
	}
	return c.Thresholds[trumps]
}

// HandfulFor returns the largest handful a player holding trumps trumps may
// declare, or NoHandful.
func (c Constants) HandfulFor(trumps int) tarot.HandfulSize {
	best := tarot.NoHandful
	for _, size := range tarot.HandfulSizes {
		min, ok := c.HandfulThresholds[size.String()]
		if ok && trumps >= min {
			best = size
		}
	}
	return best
}
