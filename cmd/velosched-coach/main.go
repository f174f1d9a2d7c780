// velosched-coach generates a training schedule for one player from the
// command line. It fetches the player's progression state from the server
// when reachable, caching a snapshot locally, and falls back to the cached
// snapshot when offline. The schedule JSON goes to -out or stdout. With
// -push it instead uploads progression recorded in a local JSON file, so
// results logged at the field reach the server once connectivity returns.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikevelosports/velosched/internal/coach"
	"github.com/mikevelosports/velosched/internal/models"
	"github.com/mikevelosports/velosched/internal/schedule"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "velosched server URL (e.g. https://velosched.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("VELOSCHED_API_KEY"), "API key for server writes")
	playerName := flag.String("player", "", "player name")
	startDate := flag.String("start", "", "schedule start date (YYYY-MM-DD)")
	horizon := flag.Int("weeks", 4, "number of weeks to plan")
	age := flag.Int("age", 0, "player age override (defaults to server/cache value)")
	trainingDays := flag.String("training-days", "", "comma-separated weekdays available for training (e.g. mon,wed,fri)")
	gameDays := flag.String("game-days", "", "comma-separated weekdays with games")
	inSeason := flag.Bool("in-season", false, "player is in a competitive season")
	sessions := flag.Int("sessions", 0, "desired training sessions per week (defaults to the number of training days)")
	minutes := flag.Int("minutes", 0, "requested session length in minutes")
	liveBall := flag.Bool("live-ball", false, "live-ball hitting work permitted")
	outPath := flag.String("out", "", "write schedule JSON to file instead of stdout")
	pushPath := flag.String("push", "", "push progression state from a JSON file to the server and exit")
	offline := flag.Bool("offline", false, "skip the server and use the cached snapshot")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("velosched-coach", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *playerName == "" || (*startDate == "" && *pushPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: velosched-coach -player <name> -start <YYYY-MM-DD> [-server <URL>] [-weeks N] [-training-days mon,wed,fri]\n")
		fmt.Fprintf(os.Stderr, "       velosched-coach -player <name> -push <state.json> -server <URL>\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *serverURL == "" && !*offline {
		fmt.Fprintf(os.Stderr, "Error: -server is required (or use -offline)\n")
		os.Exit(1)
	}

	// Open snapshot cache
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".velosched-coach")

	cache, err := coach.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open snapshot cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	if *pushPath != "" {
		pushProgression(log, cache, *serverURL, *apiKey, *playerName, *pushPath)
		return
	}

	state, cachedAge := loadState(log, cache, *serverURL, *apiKey, *playerName, *offline)

	effectiveAge := *age
	if effectiveAge == 0 {
		effectiveAge = cachedAge
	}

	cfg := buildConfig(configFlags{
		age:          effectiveAge,
		inSeason:     *inSeason,
		trainingDays: *trainingDays,
		gameDays:     *gameDays,
		sessions:     *sessions,
		minutes:      *minutes,
		startDate:    *startDate,
		horizon:      *horizon,
		liveBall:     *liveBall,
	})

	sched, err := schedule.Generate(cfg, state)
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(sched, "", "  ")
	if err != nil {
		log.Error("encoding schedule failed", "error", err)
		os.Exit(1)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, append(data, '\n'), 0o644); err != nil {
			log.Error("writing schedule failed", "path", *outPath, "error", err)
			os.Exit(1)
		}
		log.Info("schedule written", "path", *outPath, "weeks", *horizon)
		return
	}

	fmt.Println(string(data))
}

// configFlags carries the raw flag values feeding the generator config.
type configFlags struct {
	age          int
	inSeason     bool
	trainingDays string
	gameDays     string
	sessions     int
	minutes      int
	startDate    string
	horizon      int
	liveBall     bool
}

// buildConfig assembles the generator configuration. A zero sessions count
// defaults to the number of training days so every configured day stays
// usable; the generator's age policy still clamps the result.
func buildConfig(f configFlags) models.Config {
	td := splitDays(f.trainingDays)
	sessions := f.sessions
	if sessions == 0 {
		sessions = len(td)
	}
	return models.Config{
		Age:             f.age,
		InSeason:        f.inSeason,
		TrainingDays:    td,
		GameDays:        splitDays(f.gameDays),
		SessionsPerWeek: sessions,
		SessionMinutes:  f.minutes,
		StartDate:       f.startDate,
		HorizonWeeks:    f.horizon,
		LiveBallOK:      f.liveBall,
	}
}

// pushProgression uploads a progression state JSON file to the server and
// refreshes the local snapshot on success.
func pushProgression(log *slog.Logger, cache *coach.StateDB, serverURL, apiKey, name, path string) {
	if serverURL == "" {
		log.Error("-server is required with -push")
		os.Exit(1)
	}

	state, err := readProgressionFile(path)
	if err != nil {
		log.Error("reading progression file failed", "path", path, "error", err)
		os.Exit(1)
	}

	client := coach.NewClient(strings.TrimRight(serverURL, "/"), apiKey)
	playerID, age, err := client.ResolvePlayer(name)
	if err != nil {
		log.Error("player lookup failed", "player", name, "error", err)
		os.Exit(1)
	}

	if err := client.PushProgression(playerID, state); err != nil {
		log.Error("push failed", "player", name, "error", err)
		os.Exit(1)
	}

	if err := cache.SaveSnapshot(playerID, name, age, state); err != nil {
		log.Warn("snapshot cache update failed", "error", err)
	}
	log.Info("progression pushed", "player", name)
}

// readProgressionFile loads and validates a progression state JSON file.
func readProgressionFile(path string) (models.ProgressionState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProgressionState{}, err
	}
	var state models.ProgressionState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.ProgressionState{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	state.Phase = state.Phase.Normalize()
	return state, nil
}

// loadState fetches fresh progression state from the server when possible,
// updating the cache, and falls back to the cached snapshot otherwise.
func loadState(log *slog.Logger, cache *coach.StateDB, serverURL, apiKey, name string, offline bool) (models.ProgressionState, int) {
	if !offline {
		client := coach.NewClient(strings.TrimRight(serverURL, "/"), apiKey)
		playerID, age, err := client.ResolvePlayer(name)
		if err == nil {
			state, err := client.FetchProgression(playerID)
			if err == nil {
				if err := cache.SaveSnapshot(playerID, name, age, state); err != nil {
					log.Warn("snapshot cache update failed", "error", err)
				}
				log.Info("progression fetched from server", "player", name)
				return state, age
			}
			log.Warn("progression fetch failed, trying cache", "error", err)
		} else {
			log.Warn("player lookup failed, trying cache", "error", err)
		}
	}

	_, age, state, ok, err := cache.LoadSnapshot(name)
	if err != nil {
		log.Error("snapshot cache read failed", "error", err)
		os.Exit(1)
	}
	if !ok {
		log.Error("no cached snapshot for player; connect to the server at least once", "player", name)
		os.Exit(1)
	}
	log.Info("using cached progression snapshot", "player", name)
	return state, age
}

func splitDays(s string) []string {
	if s == "" {
		return nil
	}
	var days []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	return days
}
