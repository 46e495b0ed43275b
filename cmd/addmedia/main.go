package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"moodbot/internal/config"
	"moodbot/internal/media"
	"moodbot/internal/models"
	"moodbot/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "addmedia <image> <memes|calm>",
		Short: "Import an image into the bot's media library",
		Long: `Copies an image into media/memes/ or media/calm/ under the next
sequential name (positive_001.jpg, calm_001.png, ...) and records it
in the media_library table.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cfgPath, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "configs/config.yml", "path to the bot config file")
	return cmd
}

func runAdd(cfgPath, src, kindName string) error {
	kind, ok := media.KindByName(kindName)
	if !ok {
		return fmt.Errorf("unknown media kind %q (expected memes or calm)", kindName)
	}
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("source image: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	store := media.NewStore(cfg.Content.MediaDir)
	filename, err := store.Import(src, kind)
	if err != nil {
		return fmt.Errorf("import image: %w", err)
	}

	item := &models.MediaItem{
		Filename:     filename,
		Category:     kindName,
		OriginalName: filepath.Base(src),
	}
	mediaRepo := repository.NewMediaRepository(db, logger)
	if err := mediaRepo.AddMediaItem(context.Background(), item); err != nil {
		return fmt.Errorf("record media item: %w", err)
	}

	fmt.Printf("Imported %s -> %s/%s (id=%d)\n", src, kind.Subdir, filename, item.ID)
	return nil
}
