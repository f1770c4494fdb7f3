package curses

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// Category groups curses for display.
type Category string

const (
	CategoryDrought      Category = "drought"
	CategoryStreak       Category = "streak"
	CategorySituational  Category = "situational"
	CategoryOffense      Category = "offense"
	CategoryEmbarrassing Category = "embarrassing"
)

// Template is one embarrassing statistic: how to compute it, when it counts as a curse,
// how bad it is, how to say it, and whether it matters for today's game.
type Template interface {
	ID() string
	Category() Category
	Compute(log []games.GameRecord) Result
	IsCursed(r Result) bool
	Severity(r Result) int
	Format(r Result, team string) string
	RelevantFor(ctx *GameContext) bool
}

// Templates returns the registry in display order. The day drought template is keyed
// on the weekday of now in loc.
func Templates(now time.Time, loc *time.Location) []Template {
	today := timeutil.WeekdayName(timeutil.CalendarDate(now, loc))
	return []Template{
		dayDrought{day: today, now: now, loc: loc},
		homeLossStreak{},
		roadLossStreak{},
		backToBack{},
		winlessStreak{},
		shutoutFrequency{window: 15},
		blowoutLosses{window: 15, margin: 3},
		oneGoalLosses{window: 20},
	}
}

type dayDrought struct {
	day string
	now time.Time
	loc *time.Location
}

func (t dayDrought) ID() string         { return "day-drought-" + strings.ToLower(t.day) }
func (t dayDrought) Category() Category { return CategoryDrought }
func (t dayDrought) Compute(log []games.GameRecord) Result {
	return WeeksSinceWinOnDay(log, t.day, t.now, t.loc)
}
func (t dayDrought) IsCursed(r Result) bool { return intValue(r) >= 4 }
func (t dayDrought) Severity(r Result) int  { return min(intValue(r)-3, 5) }
func (t dayDrought) Format(r Result, _ string) string {
	return fmt.Sprintf("Haven't won on a %s in %d weeks", t.day, intValue(r))
}
func (t dayDrought) RelevantFor(ctx *GameContext) bool { return ctx != nil }

type homeLossStreak struct{}

func (homeLossStreak) ID() string                            { return "home-loss-streak" }
func (homeLossStreak) Category() Category                    { return CategoryStreak }
func (homeLossStreak) Compute(log []games.GameRecord) Result { return LocationLossStreak(log, true) }
func (homeLossStreak) IsCursed(r Result) bool                { return intValue(r) >= 3 }
func (homeLossStreak) Severity(r Result) int                 { return min(intValue(r)-2, 5) }
func (homeLossStreak) Format(r Result, _ string) string {
	return fmt.Sprintf("%d straight losses at home", intValue(r))
}
func (homeLossStreak) RelevantFor(ctx *GameContext) bool { return ctx != nil && ctx.IsHome }

type roadLossStreak struct{}

func (roadLossStreak) ID() string                            { return "road-loss-streak" }
func (roadLossStreak) Category() Category                    { return CategoryStreak }
func (roadLossStreak) Compute(log []games.GameRecord) Result { return LocationLossStreak(log, false) }
func (roadLossStreak) IsCursed(r Result) bool                { return intValue(r) >= 4 }
func (roadLossStreak) Severity(r Result) int                 { return min(intValue(r)-3, 5) }
func (roadLossStreak) Format(r Result, _ string) string {
	return fmt.Sprintf("%d straight losses on the road", intValue(r))
}
func (roadLossStreak) RelevantFor(ctx *GameContext) bool { return ctx != nil && !ctx.IsHome }

type backToBack struct{}

func (backToBack) ID() string                            { return "back-to-back" }
func (backToBack) Category() Category                    { return CategorySituational }
func (backToBack) Compute(log []games.GameRecord) Result { return BackToBackRecord(log) }
func (backToBack) IsCursed(r Result) bool {
	v := r.Value.(BackToBack)
	return v.Total >= 4 && lossRatio(v.Losses, v.Total) >= 0.6
}
func (backToBack) Severity(r Result) int {
	v := r.Value.(BackToBack)
	return ratioSeverity(v.Losses, v.Total)
}
func (backToBack) Format(r Result, _ string) string {
	v := r.Value.(BackToBack)
	return fmt.Sprintf("%d-%d in second games of back-to-backs", v.Wins, v.Losses)
}
func (backToBack) RelevantFor(ctx *GameContext) bool { return ctx != nil && ctx.IsBackToBack }

type winlessStreak struct{}

func (winlessStreak) ID() string                            { return "winless-streak" }
func (winlessStreak) Category() Category                    { return CategoryStreak }
func (winlessStreak) Compute(log []games.GameRecord) Result { return GamesSinceWin(log) }
func (winlessStreak) IsCursed(r Result) bool                { return intValue(r) >= 3 }
func (winlessStreak) Severity(r Result) int                 { return min(intValue(r)-2, 5) }
func (winlessStreak) Format(r Result, _ string) string {
	return fmt.Sprintf("Winless in last %d games", intValue(r))
}
func (winlessStreak) RelevantFor(ctx *GameContext) bool { return ctx != nil }

type shutoutFrequency struct {
	window int
}

func (shutoutFrequency) ID() string         { return "shutout-frequency" }
func (shutoutFrequency) Category() Category { return CategoryOffense }
func (t shutoutFrequency) Compute(log []games.GameRecord) Result {
	return ShutoutCount(log, t.window)
}
func (shutoutFrequency) IsCursed(r Result) bool {
	v := r.Value.(Shutouts)
	return v.Total >= 10 && v.Shutouts >= 3
}
func (shutoutFrequency) Severity(r Result) int { return min(r.Value.(Shutouts).Shutouts, 5) }
func (shutoutFrequency) Format(r Result, _ string) string {
	v := r.Value.(Shutouts)
	return fmt.Sprintf("Shutout %d times in last %d games", v.Shutouts, v.Total)
}
func (shutoutFrequency) RelevantFor(*GameContext) bool { return true }

type blowoutLosses struct {
	window int
	margin int
}

func (blowoutLosses) ID() string         { return "blowout-losses" }
func (blowoutLosses) Category() Category { return CategoryEmbarrassing }
func (t blowoutLosses) Compute(log []games.GameRecord) Result {
	return BlowoutLosses(log, t.window, t.margin)
}
func (blowoutLosses) IsCursed(r Result) bool { return r.Value.(Blowouts).Blowouts >= 3 }
func (blowoutLosses) Severity(r Result) int  { return min(r.Value.(Blowouts).Blowouts, 5) }
func (t blowoutLosses) Format(r Result, _ string) string {
	v := r.Value.(Blowouts)
	return fmt.Sprintf("Lost by %d+ goals %d times in last %d games", t.margin, v.Blowouts, v.Total)
}
func (blowoutLosses) RelevantFor(*GameContext) bool { return true }

type oneGoalLosses struct {
	window int
}

func (oneGoalLosses) ID() string         { return "one-goal-losses" }
func (oneGoalLosses) Category() Category { return CategorySituational }
func (t oneGoalLosses) Compute(log []games.GameRecord) Result {
	return OneGoalRecord(log, t.window)
}
func (oneGoalLosses) IsCursed(r Result) bool {
	v := r.Value.(OneGoal)
	return v.Total >= 6 && lossRatio(v.Losses, v.Total) >= 0.6
}
func (oneGoalLosses) Severity(r Result) int {
	v := r.Value.(OneGoal)
	return ratioSeverity(v.Losses, v.Total)
}
func (oneGoalLosses) Format(r Result, _ string) string {
	v := r.Value.(OneGoal)
	return fmt.Sprintf("%d-%d in one-goal games", v.Losses, v.Wins)
}
func (oneGoalLosses) RelevantFor(*GameContext) bool { return true }

func intValue(r Result) int {
	return r.Value.(int)
}

func lossRatio(losses, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(losses) / float64(total)
}

// ratioSeverity maps a loss ratio onto 0..5.
func ratioSeverity(losses, total int) int {
	if total <= 0 {
		return 0
	}
	return min(int(lossRatio(losses, total)*5), 5)
}
