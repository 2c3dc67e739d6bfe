package planner

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/metrics"
	"github.com/courtside-hq/matchweek/internal/notifier"
	"github.com/courtside-hq/matchweek/internal/pubsub"
	"github.com/courtside-hq/matchweek/internal/schedule"
	"github.com/courtside-hq/matchweek/internal/suggester"
	"github.com/google/uuid"
)

// New creates a new Planner.
func New(leagueStore LeagueStore, scheduleStore schedule.ScheduleStore, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Planner {
	return &Planner{
		league:   leagueStore,
		schedule: scheduleStore,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// GenerateWeek runs a full suggestion round for the week [fromDate, toDate].
// It snapshots the stores, runs the engine, persists the proposed matches
// (unless dryRun) and announces the round.
func (p *Planner) GenerateWeek(fromDate, toDate string, dryRun bool) (suggester.Result, error) {
	log.Info("Starting suggestion run", "from", fromDate, "to", toDate, "dryRun", dryRun)
	startTime := time.Now()
	p.metrics.IncSuggestionRuns()

	in, tournaments, err := p.buildInputs(fromDate, toDate)
	if err != nil {
		return suggester.Result{}, err
	}
	if len(tournaments) == 0 {
		log.Warn("No tournaments selected, nothing to suggest")
		return suggester.Result{}, nil
	}

	result := suggester.Generate(in)

	p.metrics.AddProposalsGenerated(len(result.Proposals))
	p.metrics.AddOddPlayers(len(result.OddPlayers))
	p.metrics.ObserveSuggestionDuration(time.Since(startTime).Seconds())

	if !dryRun && len(result.Proposals) > 0 {
		matches := proposalsToMatches(result.Proposals)
		if err := p.league.SaveMatches(matches); err != nil {
			return suggester.Result{}, fmt.Errorf("failed to save suggested matches: %w", err)
		}
		if err := p.pubsub.SendMessage(pubsub.EventWeekSuggested, result); err != nil {
			log.Error("Failed to publish suggestion event", "error", err)
		}
	}

	if err := p.notifier.SendWeekSuggestions(fromDate, toDate, result, dryRun); err != nil {
		log.Error("Failed to send suggestion notification", "error", err)
	}

	log.Info("Suggestion run finished", "proposals", len(result.Proposals), "oddPlayers", len(result.OddPlayers))
	return result, nil
}

// AssignZones recomputes the zone buckets for every selected zoned
// tournament from its category's current standings, stores them on the
// inscriptions and announces the zoned boards.
func (p *Planner) AssignZones(zoneSize int, dryRun bool) error {
	log.Info("Starting zone assignment", "zoneSize", zoneSize, "dryRun", dryRun)
	tournaments, err := p.league.GetSelectedTournaments()
	if err != nil {
		return fmt.Errorf("failed to get selected tournaments: %w", err)
	}
	categories, err := p.league.GetCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	for _, t := range tournaments {
		if !t.Zoned {
			log.Debug("Skipping unzoned tournament", "tournament", t.Name)
			continue
		}

		standings, err := p.league.GetStandings(t.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to get standings for category %s: %w", t.CategoryID, err)
		}
		zones := league.BucketZones(standings, zoneSize)
		for i := range standings {
			standings[i].ZoneName = zones[standings[i].PlayerID]
		}

		if dryRun {
			log.Info("[Dry Run] Would assign zones", "tournament", t.Name, "players", len(zones))
		} else {
			for _, st := range standings {
				zone := st.ZoneName
				if err := p.league.SetInscriptionZone(st.PlayerID, t.ID, &zone); err != nil {
					return fmt.Errorf("failed to set zone for player %s: %w", st.PlayerID, err)
				}
			}
			log.Info("Assigned zones", "tournament", t.Name, "players", len(zones))
		}

		if err := p.notifier.SendStandings(categoryNames[t.CategoryID], standings, dryRun); err != nil {
			log.Error("Failed to send standings notification", "error", err)
		}
	}
	return nil
}

// buildInputs materializes the engine snapshot for the week.
func (p *Planner) buildInputs(fromDate, toDate string) (suggester.Inputs, []league.Tournament, error) {
	tournaments, err := p.league.GetSelectedTournaments()
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get selected tournaments: %w", err)
	}
	if len(tournaments) == 0 {
		return suggester.Inputs{}, nil, nil
	}

	tournamentIDs := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		tournamentIDs = append(tournamentIDs, t.ID)
	}

	players, err := p.league.GetAllPlayers()
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get players: %w", err)
	}
	categories, err := p.league.GetCategories()
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get categories: %w", err)
	}
	inscriptions, err := p.league.GetInscriptions(tournamentIDs)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get inscriptions: %w", err)
	}
	counts, err := p.league.MatchesPlayedCounts(tournamentIDs, fromDate)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get matches played counts: %w", err)
	}
	pairs, err := p.league.HistoryPairs(tournamentIDs)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get history pairs: %w", err)
	}
	programmed, err := p.league.ProgrammedOutside(tournamentIDs, fromDate, toDate)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get programmed matches: %w", err)
	}
	availability, err := p.schedule.GetAvailability(fromDate, toDate)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get availability: %w", err)
	}
	slots, err := p.schedule.GetCourtSlots(fromDate, toDate)
	if err != nil {
		return suggester.Inputs{}, nil, fmt.Errorf("failed to get court slots: %w", err)
	}

	in := suggester.Inputs{
		Players:       make(map[string]suggester.PlayerRef, len(players)),
		MatchesPlayed: counts,
	}
	for _, pl := range players {
		ref := suggester.PlayerRef{Name: pl.Name}
		if pl.CategoryID != nil {
			ref.CategoryID = *pl.CategoryID
		}
		in.Players[pl.ID] = ref
	}
	for _, c := range categories {
		in.Categories = append(in.Categories, suggester.Category{ID: c.ID, Name: c.Name})
	}
	for _, t := range tournaments {
		in.Tournaments = append(in.Tournaments, suggester.Tournament{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID})
	}
	for _, ins := range inscriptions {
		in.Inscriptions = append(in.Inscriptions, suggester.Inscription{
			PlayerID:     ins.PlayerID,
			TournamentID: ins.TournamentID,
			ZoneName:     ins.ZoneName,
		})
	}
	for _, pair := range pairs {
		in.History = append(in.History, suggester.HistoryEntry{Player1ID: pair.PlayerAID, Player2ID: pair.PlayerBID})
	}
	for _, m := range programmed {
		in.Programmed = append(in.Programmed, suggester.ProgrammedMatch{Date: m.Date, Time: m.Time, Venue: m.Venue})
	}
	for _, a := range availability {
		in.Availability = append(in.Availability, suggester.AvailabilityEntry{
			PlayerID:  a.PlayerID,
			Date:      a.Date,
			TimeOfDay: a.TimeOfDay,
			Venue:     a.Venue,
		})
	}
	for _, s := range slots {
		in.Slots = append(in.Slots, suggester.SlotDefinition{Venue: s.Venue, Date: s.Date, Time: s.Time, Courts: s.Courts})
	}

	return in, tournaments, nil
}

// proposalsToMatches converts engine proposals into persistable matches.
func proposalsToMatches(proposals []suggester.MatchProposal) []league.Match {
	matches := make([]league.Match, 0, len(proposals))
	for _, prop := range proposals {
		matches = append(matches, league.Match{
			ID:           uuid.NewString(),
			TournamentID: prop.TournamentID,
			PlayerAID:    prop.PlayerAID,
			PlayerBID:    prop.PlayerBID,
			Venue:        prop.Venue,
			Date:         prop.Date,
			Time:         prop.Time,
			Court:        prop.Court,
			Status:       league.StatusScheduled,
			IsRematch:    prop.IsRematch,
		})
	}
	return matches
}
