package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/ft5-league/internal/app"
	"github.com/riskibarqy/ft5-league/internal/config"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/usecase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := newStderrLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build services: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.DataTimeout)
	defer cancel()

	if err := run(ctx, services, strings.ToLower(strings.TrimSpace(os.Args[1])), os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, services *app.Services, cmd string, args []string) error {
	switch cmd {
	case "check":
		snapshot, err := services.Dataset.Current(ctx)
		if err != nil {
			return err
		}
		return printJSON(checkReport{
			ActiveSeason: snapshot.ActiveSeason,
			Seasons:      snapshot.Seasons,
			LoadedAt:     snapshot.LoadedAt,
			Players:      snapshot.Players.Len(),
			Matches:      len(snapshot.Matches),
			Standings:    len(snapshot.Standings),
			Documents:    snapshot.Reports,
		})
	case "seasons":
		view, err := services.Home.Seasons(ctx)
		if err != nil {
			return err
		}
		return printJSON(view)
	case "home":
		fs := flag.NewFlagSet("home", flag.ContinueOnError)
		season := fs.Int("season", 0, "season to show (default: active season)")
		round := fs.Int("round", 0, "round to show (default: current round)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		view, err := services.Home.Home(ctx, usecase.HomeQuery{
			Season: positive(*season),
			Round:  positive(*round),
		})
		if err != nil {
			return err
		}
		return printJSON(view)
	case "player":
		if len(args) < 1 {
			return fmt.Errorf("usage: leaguedata player <player-key>")
		}
		view, err := services.Player.Player(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(view)
	case "versus":
		fs := flag.NewFlagSet("versus", flag.ContinueOnError)
		season := fs.Int("season", 0, "season to compare (default: active season)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: leaguedata versus [-season N] <player-key> <opponent-key>")
		}
		view, err := services.Player.Versus(ctx, fs.Arg(0), fs.Arg(1), positive(*season))
		if err != nil {
			return err
		}
		return printJSON(view)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type checkReport struct {
	ActiveSeason int                    `json:"active_season"`
	Seasons      []int                  `json:"seasons"`
	LoadedAt     time.Time              `json:"loaded_at"`
	Players      int                    `json:"players"`
	Matches      int                    `json:"matches"`
	Standings    int                    `json:"standings"`
	Documents    []usecase.IngestReport `json:"documents"`
}

func positive(value int) *int {
	if value <= 0 {
		return nil
	}
	return &value
}

func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// newStderrLogger keeps diagnostics off stdout, which carries the JSON output.
func newStderrLogger(level logging.Level) *logging.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return logging.FromZap(zap.New(core))
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/leaguedata check")
	fmt.Println("  go run ./cmd/leaguedata seasons")
	fmt.Println("  go run ./cmd/leaguedata home [-season N] [-round N]")
	fmt.Println("  go run ./cmd/leaguedata player <player-key>")
	fmt.Println("  go run ./cmd/leaguedata versus [-season N] <player-key> <opponent-key>")
}
