package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/luizzsec/infogram/internal/card"
	"github.com/luizzsec/infogram/internal/config"
	"github.com/luizzsec/infogram/internal/directory"
	"github.com/luizzsec/infogram/internal/logging"
	"github.com/luizzsec/infogram/internal/profile"
)

func init() {
	lookupCmd := &cobra.Command{
		Use:   "lookup [query]...",
		Short: "Look up one or more Telegram users from the command line",
		Long: `Look up users without running the bot. Each query may be a @handle,
a bare handle, a t.me link, or a numeric ID.
Example: infogram lookup @durov 777000 t.me/telegram`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLookup,
	}

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	layoutKeys, err := cfg.CardLayout()
	if err != nil {
		return err
	}
	layout, err := card.ParseLayout(layoutKeys)
	if err != nil {
		return err
	}

	opts := card.Options{
		Language:     cfg.Language,
		TimezoneName: cfg.TimezoneName,
		Layout:       layout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, err := directory.New(ctx, cfg, logger.Named("directory"))
	if err != nil {
		return fmt.Errorf("error creating directory client: %w", err)
	}

	return dir.Run(ctx, func(ctx context.Context) error {
		var bar *progressbar.ProgressBar
		if len(args) > 1 {
			bar = progressbar.Default(int64(len(args)))
		}

		for _, query := range args {
			key, err := classifyQuery(query)
			if err != nil {
				fmt.Printf("Skipping %q: not a handle, link, or numeric ID\n", query)
				continue
			}

			raw, err := dir.Resolve(ctx, key)
			if err != nil {
				fmt.Printf("Error looking up %q: %v\n", query, err)
			} else {
				rec := profile.Normalize(raw)
				c := card.Render(rec, opts, time.Now().In(loc))
				fmt.Println(c.Text())
				fmt.Println()
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}
		return nil
	})
}

// classifyQuery reuses the message classifier but also accepts a bare handle,
// which on the command line needs no @ sigil.
func classifyQuery(query string) (profile.Key, error) {
	key, err := profile.Classify(profile.Message{Text: query})
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, profile.ErrNotLookup) {
		return profile.Key{}, err
	}

	handle := strings.TrimSpace(query)
	if handle == "" || strings.ContainsAny(handle, " \t\n") {
		return profile.Key{}, profile.ErrNotLookup
	}
	return profile.HandleKey(handle), nil
}
