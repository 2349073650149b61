// Package main is the entry point for the chesscore command-line tool:
// a perft benchmark runner, FEN/PGN round-trip utility, external-engine
// smoke client, and self-play driver built on internal/engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Mgrdich/chesscore/internal/adapter"
	"github.com/Mgrdich/chesscore/internal/config"
	"github.com/Mgrdich/chesscore/internal/engine"
	"github.com/Mgrdich/chesscore/internal/selfplay"
	"github.com/Mgrdich/chesscore/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "version":
		printVersion()
	case "perft":
		err = runPerft(os.Args[2:])
	case "fen":
		err = runFEN(os.Args[2:])
	case "pgn":
		err = runPGN(os.Args[2:])
	case "uci":
		err = runUCI(os.Args[2:])
	case "selfplay":
		err = runSelfplay(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "chesscore: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: chesscore <version|perft|fen|pgn|uci|selfplay> [flags]")
}

func printVersion() {
	fmt.Printf("chesscore %s\n", version.Version)
	fmt.Printf("Build date: %s\n", version.BuildDate)
	fmt.Printf("Git commit: %s\n", version.GitCommit)
}

// runPerft counts leaf nodes at the given depth from a position, printing
// a per-move Divide breakdown followed by the total (§4.6).
func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	fen := fs.String("fen", "", "starting FEN (defaults to the standard position)")
	variant := fs.String("variant", "Standard", "board variant if -fen is not given")
	depth := fs.Int("depth", 4, "search depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := loadBoard(*fen, *variant)
	if err != nil {
		return err
	}

	divide := b.Divide(*depth)
	names := make([]string, 0, len(divide))
	for name := range divide {
		names = append(names, name)
	}
	sort.Strings(names)

	var total uint64
	for _, name := range names {
		count := divide[name]
		total += count
		fmt.Printf("%s: %d\n", name, count)
	}
	fmt.Printf("\nNodes searched: %d\n", total)
	return nil
}

// runFEN parses a FEN string and re-emits it, confirming the round trip,
// and reports the legal move count and result.
func runFEN(args []string) error {
	fs := flag.NewFlagSet("fen", flag.ExitOnError)
	fen := fs.String("fen", "", "FEN string to parse")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fen == "" {
		return fmt.Errorf("fen: -fen is required")
	}

	b, err := engine.ParseFEN(*fen)
	if err != nil {
		return err
	}

	fmt.Printf("Variant: %s\n", b.Variant)
	fmt.Printf("Round trip: %s\n", b.ToFEN())
	legal := b.Generate(engine.DepthLegal)
	fmt.Printf("Legal moves (%d):", len(legal))
	for _, m := range legal {
		fmt.Printf(" %s", m.Name)
	}
	fmt.Println()
	if result, ok := b.Tags.Get("Result"); ok && result != "*" {
		fmt.Printf("Result: %s\n", result)
	}
	return nil
}

// runPGN parses a PGN game (from -file, or stdin if omitted) and prints
// its tag pairs and a re-rendered move text.
func runPGN(args []string) error {
	fs := flag.NewFlagSet("pgn", flag.ExitOnError)
	file := fs.String("file", "", "PGN file to parse (defaults to stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	if *file == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*file)
	}
	if err != nil {
		return err
	}

	b, err := engine.ParsePGN(string(data))
	if err != nil {
		return err
	}

	fmt.Print(b.ToPGN())
	return nil
}

// runUCI sends a single position to an external engine and prints its
// chosen move, smoke-testing the adapter's subprocess client (§4.10).
func runUCI(args []string) error {
	fs := flag.NewFlagSet("uci", flag.ExitOnError)
	path := fs.String("path", "", "external engine binary path")
	fen := fs.String("fen", "", "starting FEN (defaults to the standard position)")
	variant := fs.String("variant", "Standard", "board variant if -fen is not given")
	elo := fs.Int("elo", 2850, "UCI_Elo to request (above 2850 disables strength limiting)")
	moveTimeMs := fs.Int("movetime", 1000, "search time per move, in milliseconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("uci: -path is required")
	}

	b, err := loadBoard(*fen, *variant)
	if err != nil {
		return err
	}

	eng, err := adapter.NewUCIEngine(*path, adapter.WithElo(*elo), adapter.WithMoveTimeBudget(time.Duration(*moveTimeMs)*time.Millisecond))
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	move, err := eng.SelectMove(ctx, b)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", eng.Name(), move.Name)
	fmt.Printf("Evaluation: %.2f\n", b.Evaluation)
	return nil
}

// runSelfplay drives a series of engine-vs-engine games through
// internal/selfplay, printing aggregate statistics and optionally
// exporting per-game JSON.
func runSelfplay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	variant := fs.String("variant", "Standard", "board variant")
	white := fs.String("white", "random", "white engine: trivial, random, or uci:<path>")
	black := fs.String("black", "random", "black engine: trivial, random, or uci:<path>")
	games := fs.Int("games", 10, "number of games to play")
	concurrency := fs.Int("concurrency", 0, "concurrent games (0 = auto-detect)")
	instant := fs.Bool("instant", true, "play with no inter-move delay")
	exportDir := fs.String("export", "", "directory to export per-game JSON (empty skips export)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	whiteFactory, err := engineFactory(*white)
	if err != nil {
		return fmt.Errorf("white: %w", err)
	}
	blackFactory, err := engineFactory(*black)
	if err != nil {
		return fmt.Errorf("black: %w", err)
	}

	m := selfplay.NewSessionManager(*variant, whiteFactory, blackFactory, *white, *black, *games, *concurrency)
	if *instant {
		m.SetSpeed(selfplay.SpeedInstant)
	}
	if err := m.Start(); err != nil {
		return err
	}

	for !m.AllFinished() {
		time.Sleep(50 * time.Millisecond)
	}
	defer m.Stop()

	stats := m.Stats()
	fmt.Printf("Games: %d  White wins: %d (%.1f%%)  Black wins: %d (%.1f%%)  Draws: %d\n",
		stats.TotalGames, stats.WhiteWins, stats.WhiteWinPct, stats.BlackWins, stats.BlackWinPct, stats.Draws)
	fmt.Printf("Average moves: %.1f  Average duration: %s\n", stats.AvgMoveCount, stats.AvgDuration)

	if *exportDir != "" {
		export := m.ExportStats()
		path, err := selfplay.SaveSeriesExport(export, *exportDir)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
	}

	return nil
}

func engineFactory(spec string) (selfplay.EngineFactory, error) {
	switch {
	case spec == "trivial":
		return func() (adapter.Engine, error) { return adapter.NewFirstMoveEngine(), nil }, nil
	case spec == "random":
		return func() (adapter.Engine, error) { return adapter.NewRandomEngine(), nil }, nil
	case strings.HasPrefix(spec, "uci:"):
		path := strings.TrimPrefix(spec, "uci:")
		return func() (adapter.Engine, error) { return adapter.NewUCIEngine(path) }, nil
	default:
		return nil, fmt.Errorf("unknown engine spec %q (want trivial, random, or uci:<path>)", spec)
	}
}

// loadBoard parses fen if non-empty, otherwise starts a fresh board of the
// given variant; falls back to the configured default variant when both
// are empty.
func loadBoard(fen, variant string) (*engine.Board, error) {
	if fen != "" {
		return engine.ParseFEN(fen)
	}
	if variant == "" {
		variant = config.LoadConfig().Core.Variant
	}
	return engine.NewBoard(variant)
}
