package games

// GameState mirrors the upstream lifecycle codes for a game.
type GameState string

const (
	StateFuture    GameState = "FUT"
	StatePregame   GameState = "PRE"
	StateLive      GameState = "LIVE"
	StateCritical  GameState = "CRIT"
	StateOff       GameState = "OFF"
	StateFinal     GameState = "FINAL"
	StatePostponed GameState = "PPD"
)

// IsCompleted reports whether the state is terminal (the game has a result).
func (s GameState) IsCompleted() bool {
	return s == StateOff || s == StateFinal
}

// Side is one team's participation in a game.
type Side struct {
	Abbrev     string `json:"abbrev"`
	CommonName string `json:"commonName,omitempty"`
	Score      int    `json:"score"`
}

// Name returns the common name, falling back to the abbreviation.
func (s Side) Name() string {
	if s.CommonName != "" {
		return s.CommonName
	}
	return s.Abbrev
}

// PeriodDescriptor identifies a period and its type (REG, OT, SO).
type PeriodDescriptor struct {
	Number     int    `json:"number"`
	PeriodType string `json:"periodType,omitempty"`
}

// Goal is one scoring play from a daily score summary.
type Goal struct {
	Period           int              `json:"period"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	TimeInPeriod     string           `json:"timeInPeriod"`
	TeamAbbrev       string           `json:"teamAbbrev"`
	FirstName        string           `json:"firstName,omitempty"`
	LastName         string           `json:"lastName,omitempty"`
	Name             string           `json:"name,omitempty"`
	Strength         string           `json:"strength,omitempty"`
	HighlightURL     string           `json:"highlightUrl,omitempty"`
}

// Game is the canonical shape for schedule and score summary entries.
// Goals is only populated by daily score summaries.
type Game struct {
	ID           int64     `json:"id"`
	GameDate     string    `json:"gameDate"`
	StartTimeUTC string    `json:"startTimeUTC"`
	GameState    GameState `json:"gameState"`
	HomeTeam     Side      `json:"homeTeam"`
	AwayTeam     Side      `json:"awayTeam"`
	Goals        []Goal    `json:"goals,omitempty"`
}

// Play is a single play-by-play entry; only goals carry a shot type.
type Play struct {
	TypeDescKey      string           `json:"typeDescKey"`
	PeriodDescriptor PeriodDescriptor `json:"periodDescriptor"`
	TimeInPeriod     string           `json:"timeInPeriod"`
	ShotType         string           `json:"shotType,omitempty"`
}

// PlayByPlay holds the plays of one game.
type PlayByPlay struct {
	GameID int64  `json:"gameId"`
	Plays  []Play `json:"plays"`
}

// DayScores is the score summary for one calendar date.
type DayScores struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}
