package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"adstudio/internal/catalog"
	"adstudio/internal/compositor"
	"adstudio/internal/domain"
	"adstudio/internal/infra"
	"adstudio/internal/storage"
	"adstudio/pkg/zip"
)

func main() {
	var (
		idFlag     string
		formatFlag string
		outFlag    string
		indexFlag  int
		zipFlag    bool
		listFlag   bool
	)
	flag.StringVar(&idFlag, "id", "", "ID of the saved ad to export")
	flag.StringVar(&formatFlag, "format", "png", "Export format (png, jpeg or webp)")
	flag.StringVar(&outFlag, "out", ".", "Output directory")
	flag.IntVar(&indexFlag, "index", 0, "1-based card to export (0 exports every card)")
	flag.BoolVar(&zipFlag, "zip", false, "Write every card into a single zip archive")
	flag.BoolVar(&listFlag, "list", false, "List saved ads and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("adexport: open storage")
	}
	defer closeStore()

	gw, err := catalog.New(catalog.Options{Store: store, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("adexport: build catalog")
	}

	if listFlag {
		ads, err := gw.ListAds(ctx, domain.AdFilter{})
		if err != nil {
			logger.Fatal().Err(err).Msg("adexport: list ads")
		}
		for _, ad := range ads {
			fmt.Printf("%s\t%s\t%d card(s)\t%s\n", ad.ID, ad.CreatedAt.Format(time.RFC3339), len(ad.Backgrounds), ad.Name)
		}
		return
	}

	if strings.TrimSpace(idFlag) == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		os.Exit(1)
	}
	format, err := compositor.ParseFormat(formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ad, err := gw.LoadAd(ctx, idFlag)
	if err != nil {
		logger.Fatal().Err(err).Str("id", idFlag).Msg("adexport: load ad")
	}

	renderer := compositor.NewRenderer(compositor.Options{
		Fonts:  compositor.NewFontRegistry(cfg.FontDir, &logger),
		Images: compositor.NewImageCache(time.Minute),
		Logger: &logger,
	})

	var exports []compositor.Export
	if indexFlag > 0 {
		exp, err := renderer.ExportCard(ctx, ad, indexFlag-1, format)
		if err != nil {
			logger.Fatal().Err(err).Int("index", indexFlag).Msg("adexport: export card")
		}
		exports = append(exports, exp)
	} else {
		exports, err = renderer.ExportAll(ctx, ad, format)
		if err != nil {
			logger.Fatal().Err(err).Msg("adexport: export cards")
		}
	}

	if err := os.MkdirAll(outFlag, 0o755); err != nil {
		logger.Fatal().Err(err).Str("out", outFlag).Msg("adexport: create output directory")
	}

	if zipFlag {
		assets := make([]zip.Asset, 0, len(exports))
		for _, exp := range exports {
			assets = append(assets, zip.Asset{Filename: exp.Filename, MIME: exp.MIMEType, Data: exp.Data})
		}
		name := compositor.Slug(ad.Name)
		if name == "" {
			name = "ad"
		}
		path := filepath.Join(outFlag, name+".zip")
		f, err := os.Create(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("adexport: create archive")
		}
		if err := zip.Write(f, assets, time.Now()); err != nil {
			_ = f.Close()
			logger.Fatal().Err(err).Str("path", path).Msg("adexport: write archive")
		}
		if err := f.Close(); err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("adexport: close archive")
		}
		fmt.Println(path)
		return
	}

	for _, exp := range exports {
		path := filepath.Join(outFlag, exp.Filename)
		if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("adexport: write file")
		}
		fmt.Println(path)
	}
}
