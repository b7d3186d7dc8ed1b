package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/albumrate/internal/app"
	"github.com/handiism/albumrate/internal/config"
	"github.com/handiism/albumrate/internal/logging"
	"github.com/handiism/albumrate/internal/model"
	"github.com/handiism/albumrate/internal/musicbrainz"
	"github.com/handiism/albumrate/internal/store"
	"github.com/handiism/albumrate/internal/tui"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag  string
		ratedFlag   bool
		verboseFlag bool
	)

	rootCmd := &cobra.Command{
		Use:           "albumrate [artist]",
		Short:         "Rate music albums from your terminal",
		Long: "albumrate searches MusicBrainz for an artist, lists their albums, " +
			"and stores your ratings in a local database.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := configFlag
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			settings, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}

			log, err := logging.New(settings.LogPath(), verboseFlag)
			if err != nil {
				return err
			}

			db, err := store.Open(settings.DatabasePath())
			if err != nil {
				return err
			}
			defer db.Close()

			catalog, err := musicbrainz.New(settings.MusicBrainzURL, settings.UserAgent,
				musicbrainz.WithSearchLimit(settings.SearchLimit))
			if err != nil {
				return err
			}

			deps := tui.Deps{
				Catalog:  catalog,
				Gateway:  db,
				Settings: settings,
				Log:      log,
			}

			if ratedFlag {
				return runRated(cmd.Context(), deps, db)
			}
			if len(args) == 1 {
				return runSearch(cmd.Context(), deps, args[0])
			}
			return tui.Run(tui.NewPromptModel(deps))
		},
	}

	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "settings file path")
	rootCmd.Flags().BoolVarP(&ratedFlag, "rated", "l", false, "browse albums you have already rated")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	return rootCmd
}

// runSearch resolves a command-line artist query before the TUI starts,
// so an empty result is reported on plain stdout instead of a blank
// alternate screen.
func runSearch(ctx context.Context, deps tui.Deps, query string) error {
	searchCtx, cancel := context.WithTimeout(ctx, deps.Settings.Timeout())
	defer cancel()

	artists, err := deps.Catalog.SearchArtists(searchCtx, query)
	if err != nil {
		return fmt.Errorf("search artists: %w", err)
	}
	if len(artists) == 0 {
		return fmt.Errorf("no artists found for %q", query)
	}

	ctrl := app.NewBrowser(artists, deps.Catalog, deps.Gateway,
		app.WithTimeout(deps.Settings.Timeout()),
		app.WithLogger(deps.Log),
	)
	return tui.Run(tui.NewBrowserModel(deps, ctrl))
}

// runRated opens the rated-albums view over everything in the database.
func runRated(ctx context.Context, deps tui.Deps, db *store.Store) error {
	listCtx, cancel := context.WithTimeout(ctx, deps.Settings.Timeout())
	defer cancel()

	items, err := db.ListRated(listCtx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("no rated albums yet; run albumrate to rate some")
		}
		return err
	}

	rows := make([]app.RatedAlbum, 0, len(items))
	for _, item := range items {
		r := item.Rating
		rows = append(rows, app.RatedAlbum{
			Artist: model.Artist{ID: item.ArtistID, Name: item.ArtistName},
			Album: &model.Album{
				ID:          item.AlbumID,
				Title:       item.Title,
				ReleaseYear: item.Year,
				Rating:      &r,
			},
		})
	}

	ctrl := app.NewRatedBrowser(rows, deps.Gateway,
		app.WithTimeout(deps.Settings.Timeout()),
		app.WithLogger(deps.Log),
	)
	return tui.Run(tui.NewBrowserModel(deps, ctrl))
}
