package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside-hq/matchweek/internal/database"
	"github.com/courtside-hq/matchweek/internal/league"
	"github.com/courtside-hq/matchweek/internal/schedule"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "matchweek.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
		"MIGRATIONS_DIR":    "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	leagueStore := league.New(db)
	scheduleStore := schedule.NewStore(db)
	startTime := time.Now()

	categories := []league.Category{
		{ID: "cat-primera", Name: "Primera", Position: 1},
		{ID: "cat-segunda", Name: "Segunda", Position: 2},
	}
	for _, c := range categories {
		if err := leagueStore.UpsertCategory(c); err != nil {
			log.Fatalf("Failed to upsert category %s: %s", c.Name, err)
		}
	}

	primera := "cat-primera"
	segunda := "cat-segunda"
	players := []league.PlayerInfo{
		{ID: "player-1", Name: "Ana Torres", CategoryID: &primera},
		{ID: "player-2", Name: "Berta Sanz", CategoryID: &primera},
		{ID: "player-3", Name: "Clara Ruiz", CategoryID: &primera},
		{ID: "player-4", Name: "Diana Gil", CategoryID: &primera},
		{ID: "player-5", Name: "Elena Mora", CategoryID: &segunda},
		{ID: "player-6", Name: "Flora Vega", CategoryID: &segunda},
		{ID: "player-7", Name: "Gemma Soler", CategoryID: &segunda},
		{ID: "player-8", Name: "Helena Prat", CategoryID: &segunda},
	}
	if err := leagueStore.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to upsert players: %s", err)
	}
	log.Info("Seeded players", "count", len(players))

	tournaments := []league.Tournament{
		{ID: "tour-apertura", Name: "Apertura", CategoryID: "cat-primera", Zoned: false, Selected: true},
		{ID: "tour-clausura", Name: "Clausura", CategoryID: "cat-segunda", Zoned: true, Selected: true},
	}
	for _, t := range tournaments {
		if err := leagueStore.UpsertTournament(t); err != nil {
			log.Fatalf("Failed to upsert tournament %s: %s", t.Name, err)
		}
	}

	zoneA := "Zone A"
	zones := map[string]*string{
		"player-1": nil, "player-2": nil, "player-3": nil, "player-4": nil,
		"player-5": &zoneA, "player-6": &zoneA, "player-7": &zoneA, "player-8": &zoneA,
	}
	for _, p := range players[:4] {
		if err := leagueStore.AddInscription(p.ID, "tour-apertura", zones[p.ID]); err != nil {
			log.Fatalf("Failed to inscribe %s: %s", p.Name, err)
		}
	}
	for _, p := range players[4:] {
		if err := leagueStore.AddInscription(p.ID, "tour-clausura", zones[p.ID]); err != nil {
			log.Fatalf("Failed to inscribe %s: %s", p.Name, err)
		}
	}
	log.Info("Seeded tournaments and inscriptions")

	// Court slots and availability for the next seven days.
	weekStart := time.Now().AddDate(0, 0, 1)
	venues := []string{"central", "norte"}
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day).Format("2006-01-02")
		for _, venue := range venues {
			for _, hour := range []string{"10:00", "18:00"} {
				slot := schedule.CourtSlot{Venue: venue, Date: date, Time: hour, Courts: 2}
				if err := scheduleStore.UpsertCourtSlot(slot); err != nil {
					log.Fatalf("Failed to upsert court slot: %s", err)
				}
			}
		}
	}
	for i, p := range players {
		// Stagger availability so not everyone shares the same day.
		date := weekStart.AddDate(0, 0, i%5).Format("2006-01-02")
		timeOfDay := "morning"
		if i%2 == 1 {
			timeOfDay = "evening"
		}
		if err := scheduleStore.AddAvailability(p.ID, date, timeOfDay, "any"); err != nil {
			log.Fatalf("Failed to add availability for %s: %s", p.Name, err)
		}
	}
	log.Info("Seeded court slots and availability")

	// A bit of history so standings and rematch handling have data.
	lastWeek := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	played := []league.Match{
		{ID: uuid.NewString(), TournamentID: "tour-apertura", PlayerAID: "player-1", PlayerBID: "player-2", Venue: "central", Date: lastWeek, Time: "10:00", Court: 1, Status: league.StatusScheduled},
		{ID: uuid.NewString(), TournamentID: "tour-apertura", PlayerAID: "player-3", PlayerBID: "player-4", Venue: "central", Date: lastWeek, Time: "10:00", Court: 2, Status: league.StatusScheduled},
	}
	if err := leagueStore.SaveMatches(played); err != nil {
		log.Fatalf("Failed to save matches: %s", err)
	}
	if err := leagueStore.RecordResult(played[0].ID, "player-1", 2, 0); err != nil {
		log.Fatalf("Failed to record result: %s", err)
	}
	if err := leagueStore.RecordResult(played[1].ID, "player-4", 1, 2); err != nil {
		log.Fatalf("Failed to record result: %s", err)
	}

	fmt.Println("Seeded demo league.")
	log.Info("Seeding finished", "duration", time.Since(startTime))
}
