package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// defaultCategories are the muscle groups offered when browsing templates.
var defaultCategories = []string{
	"Дельты", "Пресс", "Грудные", "Ноги", "Спина", "Руки", "Трапеция",
}

// defaultBanners maps page names to the text shown above their buttons.
var defaultBanners = []struct{ name, description string }{
	{"main", "Welcome! Pick a section to get started."},
	{"schedule", "Your training schedule."},
	{"program", "Your training programs."},
	{"profile", "Your profile."},
	{"user_program", "Program overview."},
	{"training_process", "Tap an exercise to log your sets."},
}

func newSeedCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create default categories and banner descriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(cmd.Context(), g.cfg.Database, commandLogger(g), false)
			if err != nil {
				return err
			}
			defer b.close()
			return seed(cmd.Context(), b, cmd.OutOrStdout())
		},
	}
}

// seed is idempotent: categories are only created into an empty collection
// and banners keep their images.
func seed(ctx context.Context, b *backend, out io.Writer) error {
	created, err := b.categories.CreateIfEmpty(ctx, defaultCategories)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	fmt.Fprintf(out, "categories created: %d\n", created)

	for _, banner := range defaultBanners {
		if err := b.banners.UpsertDescription(ctx, banner.name, banner.description); err != nil {
			return fmt.Errorf("seed banner %s: %w", banner.name, err)
		}
	}
	fmt.Fprintf(out, "banners updated: %d\n", len(defaultBanners))
	return nil
}
