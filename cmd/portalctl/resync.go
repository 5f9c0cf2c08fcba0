package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatiasXp0/forca-tatica/internal/config"
	"github.com/MatiasXp0/forca-tatica/internal/discord"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
	"github.com/MatiasXp0/forca-tatica/internal/observability"
	"github.com/MatiasXp0/forca-tatica/internal/persistence"
	"github.com/MatiasXp0/forca-tatica/internal/repository"
	"github.com/MatiasXp0/forca-tatica/internal/service"
)

var resyncCmd = &cobra.Command{
	Use:   "resync [kind...]",
	Short: "Mirror every record into its Discord channel",
	Long: `Walk every record of the given kinds (all kinds when none are given)
and create or edit its Discord message. Messages deleted on the Discord side
are recreated. Use this after an outage or a channel change.

Kinds: announcements, uniforms, vehicles, personnel.`,
	RunE: runResync,
}

func runResync(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, "portalctl")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	messenger, err := discord.NewMessenger(cfg.Discord, cfg.App.Name, logger)
	if err != nil {
		return err
	}
	if messenger == nil {
		return fmt.Errorf("discord sync is disabled (DISCORD_MODE=%s)", cfg.Discord.Mode)
	}

	pool := pg.PoolHandle()
	syncService := service.NewSyncService(service.SyncDependencies{
		Messenger:     messenger,
		Channels:      discord.ChannelsFromConfig(cfg.Discord.Channels),
		Announcements: repository.NewAnnouncementRepository(pool),
		Uniforms:      repository.NewUniformRepository(pool),
		Vehicles:      repository.NewVehicleRepository(pool),
		Personnel:     repository.NewPersonnelRepository(pool),
		Metrics:       observability.NewMetrics(),
		Logger:        logger,
	})

	report, err := syncService.Resync(ctx, kinds)
	printReport(cmd, kinds, report)
	if err != nil {
		logger.Error("resync aborted", zap.Error(err))
		return err
	}
	return nil
}

func parseKinds(args []string) ([]domain.RecordKind, error) {
	if len(args) == 0 {
		return domain.RecordKinds, nil
	}
	kinds := make([]domain.RecordKind, 0, len(args))
	seen := map[domain.RecordKind]bool{}
	for _, arg := range args {
		kind, ok := domain.ParseRecordKind(arg)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", arg)
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func printReport(cmd *cobra.Command, kinds []domain.RecordKind, report service.ResyncReport) {
	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		counts := report[kind]
		outcomes := make([]string, 0, len(counts))
		for outcome := range counts {
			outcomes = append(outcomes, string(outcome))
		}
		sort.Strings(outcomes)

		fmt.Fprintf(out, "%-13s", kind)
		if len(outcomes) == 0 {
			fmt.Fprint(out, " no records")
		}
		for _, o := range outcomes {
			fmt.Fprintf(out, " %s=%d", o, counts[observability.SyncOutcome(o)])
		}
		fmt.Fprintln(out)
	}
}
