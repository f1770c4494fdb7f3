package curses

import (
	"sort"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// Result is the output of one statistical template: a value and the games behind it.
type Result struct {
	Value    any                `json:"value"`
	Evidence []games.GameRecord `json:"evidence"`
}

// BackToBack is the record in the second game of back-to-backs.
type BackToBack struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Total  int `json:"total"`
}

// Shutouts counts games without a goal in a recent window.
type Shutouts struct {
	Shutouts int `json:"shutouts"`
	Total    int `json:"total"`
}

// Blowouts counts lopsided losses in a recent window.
type Blowouts struct {
	Blowouts int `json:"blowouts"`
	Total    int `json:"total"`
}

// OneGoal is the record in one-goal games.
type OneGoal struct {
	Losses int `json:"losses"`
	Wins   int `json:"wins"`
	Total  int `json:"total"`
}

// Comebacks approximates blown leads. Comebacks is always zero: period-level scoring is not available.
type Comebacks struct {
	Comebacks int `json:"comebacks"`
	Losses    int `json:"losses"`
	Total     int `json:"total"`
}

// WeeksSinceWinOnDay reports how many weeks have passed since the team last won on dayName.
// Without any win on that day, the oldest game on that day anchors the count.
func WeeksSinceWinOnDay(log []games.GameRecord, dayName string, now time.Time, loc *time.Location) Result {
	var dayGames []games.GameRecord
	for _, g := range log {
		if g.DayOfWeek == dayName {
			dayGames = append(dayGames, g)
		}
	}
	if len(dayGames) == 0 {
		return Result{Value: 0, Evidence: []games.GameRecord{}}
	}

	today := timeutil.CalendarDate(now, loc)
	lastWin := -1
	for i, g := range dayGames {
		if g.IsWin {
			lastWin = i
			break
		}
	}

	if lastWin == -1 {
		oldest := dayGames[len(dayGames)-1]
		return Result{Value: timeutil.WeeksBetween(oldest.Date, today), Evidence: dayGames}
	}

	weeks := timeutil.WeeksBetween(dayGames[lastWin].Date, today)
	return Result{Value: weeks, Evidence: dayGames[:lastWin:lastWin]}
}

// LocationLossStreak counts the current run of losses at home (isHome) or on the road.
func LocationLossStreak(log []games.GameRecord, isHome bool) Result {
	evidence := []games.GameRecord{}
	for _, g := range log {
		if g.IsHome != isHome {
			continue
		}
		if !g.IsLoss {
			break
		}
		evidence = append(evidence, g)
	}
	return Result{Value: len(evidence), Evidence: evidence}
}

// BackToBackRecord tallies outcomes of games played the day after another game.
func BackToBackRecord(log []games.GameRecord) Result {
	sorted := make([]games.GameRecord, len(log))
	copy(sorted, log)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var value BackToBack
	evidence := []games.GameRecord{}
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if timeutil.DaysBetween(prev.Date, curr.Date) != 1 {
			continue
		}
		if curr.IsWin {
			value.Wins++
		}
		if curr.IsLoss {
			value.Losses++
			evidence = append(evidence, curr)
		}
	}
	value.Total = value.Wins + value.Losses
	return Result{Value: value, Evidence: evidence}
}

// GamesSinceWin counts games since the most recent win.
func GamesSinceWin(log []games.GameRecord) Result {
	evidence := []games.GameRecord{}
	for _, g := range log {
		if g.IsWin {
			break
		}
		evidence = append(evidence, g)
	}
	return Result{Value: len(evidence), Evidence: evidence}
}

// ShutoutCount counts games without a goal among the n most recent. n <= 0 means 10.
func ShutoutCount(log []games.GameRecord, n int) Result {
	if n <= 0 {
		n = 10
	}
	recent := mostRecent(log, n)
	evidence := filter(recent, func(g games.GameRecord) bool { return g.TeamScore == 0 })
	return Result{Value: Shutouts{Shutouts: len(evidence), Total: len(recent)}, Evidence: evidence}
}

// BlowoutLosses counts losses by at least margin goals among the n most recent.
func BlowoutLosses(log []games.GameRecord, n, margin int) Result {
	recent := mostRecent(log, n)
	evidence := filter(recent, func(g games.GameRecord) bool { return g.Margin() >= margin })
	return Result{Value: Blowouts{Blowouts: len(evidence), Total: len(recent)}, Evidence: evidence}
}

// OneGoalRecord is the record in one-goal games among the n most recent.
func OneGoalRecord(log []games.GameRecord, n int) Result {
	recent := mostRecent(log, n)
	oneGoal := filter(recent, func(g games.GameRecord) bool {
		return g.Margin() == 1 || g.Margin() == -1
	})
	evidence := filter(oneGoal, func(g games.GameRecord) bool { return g.IsLoss })
	return Result{
		Value:    OneGoal{Losses: len(evidence), Wins: len(oneGoal) - len(evidence), Total: len(oneGoal)},
		Evidence: evidence,
	}
}

// ComebackRecord approximates blown leads as losses by two or more.
func ComebackRecord(log []games.GameRecord) Comebacks {
	blowouts := filter(log, func(g games.GameRecord) bool { return g.Margin() >= 2 })
	return Comebacks{Comebacks: 0, Losses: len(blowouts), Total: len(blowouts)}
}

func mostRecent(log []games.GameRecord, n int) []games.GameRecord {
	if n > len(log) {
		n = len(log)
	}
	return log[:n:n]
}

func filter(log []games.GameRecord, keep func(games.GameRecord) bool) []games.GameRecord {
	out := []games.GameRecord{}
	for _, g := range log {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
