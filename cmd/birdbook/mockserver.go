package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"birdbook/internal/bird"
	"birdbook/internal/mockserver"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newMockServerCmd(opts *rootOptions) *cobra.Command {
	var (
		addr string
		seed bool
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory bird service for local use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			if !opts.verbose {
				log = log.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
			}
			defer func() { _ = log.Sync() }()

			store := mockserver.NewStore()
			if seed {
				for _, in := range sampleBirds() {
					store.Create(in)
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, mockserver.New(store, log), log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&seed, "seed", false, "start with a few sample birds")
	return cmd
}

// serve runs h on addr until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("mock server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("mock server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func sampleBirds() []bird.Input {
	return []bird.Input{
		{
			CommonName:     "American Robin",
			ScientificName: "Turdus migratorius",
			Description:    "A familiar **songbird** with a red-orange breast.",
			Habitat:        []string{"Gardens", "Woodland"},
			Appearance:     bird.Appearance{Size: "Medium", Color: []string{"Red", "Brown", "Gray"}},
			Photos:         []string{},
		},
		{
			CommonName:     "Blue Jay",
			ScientificName: "Cyanocitta cristata",
			Description:    "Loud, clever and crested.",
			Habitat:        []string{"Forest", "Suburbs"},
			Appearance:     bird.Appearance{Size: "Medium", Color: []string{"Blue", "White"}},
			Photos:         []string{},
		},
		{
			CommonName:     "Ruby-throated Hummingbird",
			ScientificName: "Archilochus colubris",
			Description:    "Tiny and fast, hovers at flowers.",
			Habitat:        []string{"Meadows", "Gardens"},
			Appearance:     bird.Appearance{Size: "Small", Color: []string{"Green", "Red"}},
			Photos:         []string{},
		},
	}
}
