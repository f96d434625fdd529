package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkrogh/energy-mlops-go/internal/config"
	"github.com/mkrogh/energy-mlops-go/internal/database"
	"github.com/mkrogh/energy-mlops-go/internal/middleware"
	"github.com/mkrogh/energy-mlops-go/internal/pipeline"
	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

func main() {
	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Energy consumption MLOps pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		prepareCmd(),
		searchCmd(),
		trainCmd(),
		driftCmd(),
		promoteCmd(),
		tokenCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}

// openTracking loads configuration and opens the tracking store
func openTracking() (*config.Config, *sql.DB, error) {
	cfg := config.Load()
	db, err := database.Open(cfg.TrackingDBPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func experimentName(cfg *config.Config) string {
	training, err := pipeline.LoadTrainingConfig(cfg.TrainingConfig)
	if err != nil {
		return "energy-consumption-prediction"
	}
	return training.Experiment
}

func prepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Clean the raw dataset and produce the chronological splits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openTracking()
			if err != nil {
				return err
			}
			defer db.Close()

			return pipeline.Prepare(cfg, tracking.NewStore(db), experimentName(cfg))
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Run the automated model search and print the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openTracking()
			if err != nil {
				return err
			}
			defer db.Close()

			return pipeline.Search(cfg, tracking.NewStore(db))
		},
	}
}

func trainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the configured models and register them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openTracking()
			if err != nil {
				return err
			}
			defer db.Close()

			return pipeline.Train(cfg, tracking.NewStore(db), tracking.NewRegistry(db))
		},
	}
}

func driftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Analyze data and prediction drift against the production window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openTracking()
			if err != nil {
				return err
			}
			defer db.Close()

			return pipeline.Drift(cfg, tracking.NewStore(db), tracking.NewRegistry(db), experimentName(cfg))
		},
	}
}

func promoteCmd() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "promote <model-name>",
		Short: "Promote a registered model version to Production",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openTracking()
			if err != nil {
				return err
			}
			defer db.Close()

			return pipeline.Promote(tracking.NewRegistry(db), args[0], version)
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "model version to promote (0 = latest)")

	return cmd
}

func tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the registry endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			secret, err := cfg.RequireSecret()
			if err != nil {
				return err
			}

			token, err := middleware.NewToken(secret, subject, ttl)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "pipeline", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
