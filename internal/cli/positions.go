package cli

import (
	"alcyxob/fitness-bot/internal/logger"
	"alcyxob/fitness-bot/internal/service"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPositionsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Maintain exercise positions",
	}
	cmd.AddCommand(newRenumberCmd(g))
	return cmd
}

func newRenumberCmd(g *globals) *cobra.Command {
	var (
		day string
		all bool
	)

	cmd := &cobra.Command{
		Use:   "renumber",
		Short: "Rewrite positions as 0..N-1 in insertion order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dayID := primitive.NilObjectID
			if day != "" {
				id, err := primitive.ObjectIDFromHex(day)
				if err != nil {
					return fmt.Errorf("invalid --day %q: %w", day, err)
				}
				dayID = id
			}

			b, err := openBackend(cmd.Context(), g.cfg.Database, commandLogger(g), false)
			if err != nil {
				return err
			}
			defer b.close()

			ordering := service.NewOrderingService(b.tx, b.exercises, b.exerciseSets)
			return renumber(cmd.Context(), ordering, dayID, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "training day id (hex)")
	cmd.Flags().BoolVar(&all, "all", false, "renumber every day holding exercises")
	cmd.MarkFlagsOneRequired("day", "all")
	cmd.MarkFlagsMutuallyExclusive("day", "all")
	return cmd
}

// renumber repairs one day, or every day when dayID is nil.
func renumber(ctx context.Context, ordering service.OrderingService, dayID primitive.ObjectID, out io.Writer) error {
	if dayID.IsZero() {
		days, err := ordering.RenumberAll(ctx)
		if err != nil {
			return fmt.Errorf("renumber all: %w", err)
		}
		fmt.Fprintf(out, "days renumbered: %d\n", days)
		return nil
	}

	n, err := ordering.Renumber(ctx, dayID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "day %s: %d exercises renumbered\n", dayID.Hex(), n)
	return nil
}

func commandLogger(g *globals) *slog.Logger {
	return logger.Setup(g.cfg.Log)
}
