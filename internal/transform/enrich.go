package transform

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	// Decoders for the formats the scraper collects. DecodeConfig only
	// reads header dimensions; no pixel data is processed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/sync/errgroup"
)

// EnrichStats summarizes a dimension enrichment pass.
type EnrichStats struct {
	Total    int `json:"total"`
	Enriched int `json:"enriched"`
	Skipped  int `json:"skipped"` // already enriched, remote-only, or unreadable
}

// Enrich fills width/height on every item whose image resolves to a
// readable local file under root. Items that already carry dimensions or
// whose image is a remote URL are skipped; unreadable files are warned
// about and skipped, never fatal. Work is spread across a bounded worker
// pool since header reads are I/O bound.
func Enrich(ctx context.Context, items []Item, root string, workers int, logger *slog.Logger) (EnrichStats, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	stats := EnrichStats{Total: len(items)}

	ch := make(chan Item)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for item := range ch {
				enriched := enrichOne(item, root, logger)
				mu.Lock()
				if enriched {
					stats.Enriched++
				} else {
					stats.Skipped++
				}
				mu.Unlock()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(ch)
		for _, item := range items {
			select {
			case ch <- item:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

func enrichOne(item Item, root string, logger *slog.Logger) bool {
	if hasDimensions(item) {
		return false
	}
	local := localImagePath(item, root)
	if local == "" {
		return false
	}

	f, err := os.Open(local)
	if err != nil {
		logger.Warn("enrich: open failed", slog.String("path", local), slog.String("error", err.Error()))
		return false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		logger.Warn("enrich: decode failed", slog.String("path", local), slog.String("error", err.Error()))
		return false
	}

	item["width"] = cfg.Width
	item["height"] = cfg.Height
	return true
}

func hasDimensions(item Item) bool {
	w, wok := item["width"].(float64)
	h, hok := item["height"].(float64)
	return wok && hok && w > 0 && h > 0
}

// localImagePath resolves the item's primary image to a path under root,
// or "" when the image is remote or absent.
func localImagePath(item Item, root string) string {
	p := stringField(item, "image")
	if p == "" {
		if images := stringSlice(item, "images"); len(images) > 0 {
			p = images[0]
		}
	}
	if p == "" || isRemote(p) {
		return ""
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
