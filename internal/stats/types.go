package stats

// Slam categories, the index into the Slams arrays.
const (
	SlamUnannouncedSuccess = iota
	SlamAnnouncedFailure
	SlamAnnouncedSuccess
)

// PlayerStats is the summary of one player across the whole history.
// Bids is indexed by bid (Small to GuardAgainst), Handfuls by size (Simple to
// Triple) and Slams by slam category.
type PlayerStats struct {
	Bids          [4]int
	Handfuls      [3]int
	Slams         [3]int
	Miseres       int
	LastTrickWon  int
	LastTrickLost int
	Taker         int
	Partner       int
	Defense       int
	TotalHands    int
	TotalMatches  int
	PointsGained  int
	PointsLost    int
	BestScore     int
	WorstScore    int
	NetGain       int
	GainPerHand   float64

	// Shared by every player.
	MedianGain        int
	MedianGainPerHand float64

	// Position of the player between the lowest and highest net gain, 0 to 10.
	Decile        int
	DecilePerHand int
}

// MatchStats is the summary of one match.
type MatchStats struct {
	MatchID       string
	Hands         int
	AttackTrumps  int
	LastTrickWon  int
	LastTrickLost int
	Miseres       int
	PointsGained  int
	PointsLost    int
	BestScore     int
	WorstScore    int
	Bids          [4]int
	Handfuls      [3]int
	Slams         [3]int
}

// GlobalStats is the summary of the whole history.
type GlobalStats struct {
	Hands             int
	AttackTrumps      int
	LastTrickWon      int
	LastTrickLost     int
	Miseres           int
	PointsGained      int
	BestScore         int
	WorstScore        int
	Bids              [4]int
	Handfuls          [3]int
	Slams             [3]int
	MinGain           int
	MaxGain           int
	MedianGain        int
	MinGainPerHand    float64
	MaxGainPerHand    float64
	MedianGainPerHand float64
}

// Report is the result of Analyze.
type Report struct {
	Players map[string]PlayerStats
	Matches []MatchStats
	Global  GlobalStats
}
