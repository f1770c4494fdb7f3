package fixture

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

const (
	providerName        = "fixture"
	gameIDBase   int64  = 2_000_000_000
	slotsPerDay  int64  = 100
	seedSalt     uint64 = 0x5eed
)

var defaultDataset = mustParseDataset(seasonYAML)

// Provider serves a deterministic season generated from an embedded dataset.
// Games before today (in loc) are final; today's and later games are scheduled.
// Every third calendar day is a rest day, so back-to-backs occur regularly.
type Provider struct {
	data dataset
	loc  *time.Location
	now  func() time.Time
}

// New creates a fixture provider. A nil loc means UTC.
func New(loc *time.Location) *Provider {
	if loc == nil {
		loc = time.UTC
	}
	return &Provider{
		data: defaultDataset,
		loc:  loc,
		now:  time.Now,
	}
}

// FetchClubSchedule returns team's games across the generated season, without goals.
func (p *Provider) FetchClubSchedule(_ context.Context, team string) ([]games.Game, error) {
	today := p.today()
	first, last := p.window(today)

	out := []games.Game{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		for _, g := range p.gamesOn(d, today) {
			if g.HomeTeam.Abbrev != team && g.AwayTeam.Abbrev != team {
				continue
			}
			g.Goals = nil
			out = append(out, g)
		}
	}
	return out, nil
}

// FetchScores returns the games and goals for date. Dates outside the season are empty.
func (p *Provider) FetchScores(_ context.Context, date string) (games.DayScores, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return games.DayScores{}, fmt.Errorf("fixture: invalid date %q: %w", date, err)
	}
	today := p.today()
	first, last := p.window(today)
	out := games.DayScores{Date: date, Games: []games.Game{}}
	if day.Before(first) || day.After(last) {
		return out, nil
	}
	out.Games = append(out.Games, p.gamesOn(day, today)...)
	return out, nil
}

// FetchPlayByPlay returns the goal plays of a generated game, each with a shot type.
func (p *Provider) FetchPlayByPlay(_ context.Context, gameID int64) (games.PlayByPlay, error) {
	notFound := &providers.StatusError{
		Provider:   providerName,
		StatusCode: 404,
		Path:       fmt.Sprintf("gamecenter/%d/play-by-play", gameID),
	}
	slot := gameID - gameIDBase
	if slot < 0 {
		return games.PlayByPlay{}, notFound
	}
	date := time.Unix((slot/slotsPerDay)*86400, 0).UTC()
	for _, g := range p.gamesOn(date, p.today()) {
		if g.ID != gameID {
			continue
		}
		plays := make([]games.Play, 0, len(g.Goals))
		for i, goal := range g.Goals {
			plays = append(plays, games.Play{
				TypeDescKey:      "goal",
				PeriodDescriptor: goal.PeriodDescriptor,
				TimeInPeriod:     goal.TimeInPeriod,
				ShotType:         p.data.ShotTypes[(int(gameID%int64(len(p.data.ShotTypes)))+i)%len(p.data.ShotTypes)],
			})
		}
		return games.PlayByPlay{GameID: gameID, Plays: plays}, nil
	}
	return games.PlayByPlay{}, notFound
}

// FetchStandings returns the dataset's teams in file order.
func (p *Provider) FetchStandings(_ context.Context) ([]teams.Team, error) {
	out := make([]teams.Team, 0, len(p.data.Teams))
	for _, t := range p.data.Teams {
		out = append(out, teams.Team{Abbreviation: t.Abbrev, Name: t.Name, CommonName: t.CommonName})
	}
	return out, nil
}

func (p *Provider) today() time.Time {
	return timeutil.CalendarDate(p.now(), p.loc)
}

func (p *Provider) window(today time.Time) (time.Time, time.Time) {
	return today.AddDate(0, 0, -p.data.SeasonDays), today.AddDate(0, 0, p.data.LookaheadDays)
}

// gamesOn pairs every team once with a round-robin rotation keyed on the day number.
func (p *Provider) gamesOn(date, today time.Time) []games.Game {
	day := date.Unix() / 86400
	if day%3 == 2 {
		return nil
	}
	n := len(p.data.Teams)
	order := rotation(n, int(day%int64(n-1)))
	out := make([]games.Game, 0, n/2)
	for i := 0; i < n/2; i++ {
		home, away := p.data.Teams[order[i]], p.data.Teams[order[n-1-i]]
		if (day+int64(i))%2 == 1 {
			home, away = away, home
		}
		id := gameIDBase + day*slotsPerDay + int64(i)
		out = append(out, p.buildGame(id, date, home, away, date.Before(today)))
	}
	return out
}

func rotation(n, round int) []int {
	order := make([]int, 0, n)
	order = append(order, 0)
	for j := 0; j < n-1; j++ {
		order = append(order, 1+(j+round)%(n-1))
	}
	return order
}

func (p *Provider) buildGame(id int64, date time.Time, home, away teamEntry, completed bool) games.Game {
	g := games.Game{
		ID:           id,
		GameDate:     timeutil.FormatDate(date),
		StartTimeUTC: date.Add(23 * time.Hour).Format(time.RFC3339),
		GameState:    games.StateFuture,
		HomeTeam:     games.Side{Abbrev: home.Abbrev, CommonName: home.CommonName},
		AwayTeam:     games.Side{Abbrev: away.Abbrev, CommonName: away.CommonName},
	}
	if !completed {
		return g
	}

	r := rand.New(rand.NewPCG(uint64(id), seedSalt))
	homeGoals, awayGoals := r.IntN(6), r.IntN(6)
	goals := make([]games.Goal, 0, homeGoals+awayGoals+1)
	for i := 0; i < homeGoals; i++ {
		goals = append(goals, randomGoal(r, home, 1+r.IntN(3)))
	}
	for i := 0; i < awayGoals; i++ {
		goals = append(goals, randomGoal(r, away, 1+r.IntN(3)))
	}
	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].Period != goals[j].Period {
			return goals[i].Period < goals[j].Period
		}
		return goals[i].TimeInPeriod < goals[j].TimeInPeriod
	})
	if homeGoals == awayGoals {
		winner := home
		if r.IntN(2) == 1 {
			winner = away
		}
		goals = append(goals, randomGoal(r, winner, 4))
		if winner.Abbrev == home.Abbrev {
			homeGoals++
		} else {
			awayGoals++
		}
	}

	g.GameState = games.StateOff
	g.HomeTeam.Score = homeGoals
	g.AwayTeam.Score = awayGoals
	g.Goals = goals
	return g
}

func randomGoal(r *rand.Rand, team teamEntry, period int) games.Goal {
	scorer := team.Scorers[r.IntN(len(team.Scorers))]
	var first, last string
	switch len(scorer) {
	case 0:
	case 1:
		last = scorer[0]
	default:
		first, last = scorer[0], scorer[1]
	}
	name := last
	if first != "" {
		name = first[:1] + ". " + last
	}
	periodType := "REG"
	minutes := r.IntN(20)
	if period > 3 {
		periodType = "OT"
		minutes = r.IntN(5)
	}
	return games.Goal{
		Period:           period,
		PeriodDescriptor: games.PeriodDescriptor{Number: period, PeriodType: periodType},
		TimeInPeriod:     fmt.Sprintf("%02d:%02d", minutes, r.IntN(60)),
		TeamAbbrev:       team.Abbrev,
		FirstName:        first,
		LastName:         last,
		Name:             name,
		Strength:         "ev",
	}
}
