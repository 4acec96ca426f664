package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gridkit/infinigrid/pkg/cache"
	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/feed"
	"github.com/gridkit/infinigrid/pkg/grid"
	"github.com/gridkit/infinigrid/pkg/snapshotio"
)

// demoCommand creates the interactive demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		configFile string
		source     string
		seed       int64
		perPage    int
		columns    int
		capacity   int
		equalSize  bool
		elastic    bool
		noCache    bool
		resume     string
		saveStatus string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal demo of the windowed grid",
		Long: `Run the interactive terminal demo of the windowed grid.

The demo renders an endless card feed as masonry columns. Scrolling near
the bottom edge appends the next page; scrolling back near the top restores
previously recycled pages. Only a bounded window of cards is ever
materialized; whole pages are recycled off the far edge.

By default cards come from the built-in deterministic generator. Point
--source at a running 'infinigrid serve' instance to fetch over HTTP with
response caching instead.

Keys: j/k scroll, space page down, r relayout, d delete, c clear, s save,
q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			applyDemoFlags(cmd, &cfg, source, seed, perPage, columns, capacity, equalSize, elastic)
			return c.runDemo(cmd.Context(), cfg, noCache, resume, saveStatus)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/infinigrid/config.toml)")
	cmd.Flags().StringVar(&source, "source", "", "feed server URL (default: built-in generator)")
	cmd.Flags().Int64Var(&seed, "seed", defaultSeed, "feed generator seed")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "cards per feed page")
	cmd.Flags().IntVar(&columns, "columns", 0, "fixed column count (default: derived from width)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "window capacity in cards, -1 for unbounded")
	cmd.Flags().BoolVar(&equalSize, "equal-size", false, "treat all cards as the first card's size")
	cmd.Flags().BoolVar(&elastic, "elastic", false, "suppress top-edge triggers during overscroll")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed response caching")
	cmd.Flags().StringVar(&resume, "resume", "", "restore the grid from a snapshot file")
	cmd.Flags().StringVar(&saveStatus, "save-status", "", "write a snapshot file on save/quit")

	return cmd
}

// applyDemoFlags overlays explicitly-set flags onto the loaded config.
func applyDemoFlags(cmd *cobra.Command, cfg *Config, source string, seed int64, perPage, columns, capacity int, equalSize, elastic bool) {
	if cmd.Flags().Changed("source") {
		cfg.Feed.Source = source
	}
	if cmd.Flags().Changed("seed") {
		cfg.Feed.Seed = seed
	}
	if cmd.Flags().Changed("per-page") {
		cfg.Feed.PerPage = perPage
	}
	if cmd.Flags().Changed("columns") {
		cfg.Grid.Columns = columns
	}
	if cmd.Flags().Changed("capacity") {
		cfg.Grid.Capacity = capacity
	}
	if cmd.Flags().Changed("equal-size") {
		cfg.Grid.EqualSize = equalSize
	}
	if cmd.Flags().Changed("elastic") {
		cfg.Grid.ElasticOverscroll = elastic
	}
}

// runDemo wires the grid, canvas, and feed source together and hands
// control to bubbletea.
func (c *CLI) runDemo(ctx context.Context, cfg Config, noCache bool, resumePath, savePath string) error {
	src, gen, err := c.newPageSource(cfg, noCache)
	if err != nil {
		return err
	}

	cv := newCanvas()
	// Seed a plausible size so column derivation works before the first
	// WindowSizeMsg arrives.
	cv.setSize(80, 24)

	g, err := grid.New(cfg.gridOptions(), cv, cv, nil)
	if err != nil {
		return err
	}

	if resumePath != "" {
		if err := restoreStatus(g, gen, resumePath); err != nil {
			return err
		}
	}

	model := newDemoModel(g, cv, src, c.Logger, savePath)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	model.setProgram(p)

	_, err = p.Run()
	return err
}

// newPageSource returns the configured page source plus the deterministic
// generator used for snapshot element rebuilding.
func (c *CLI) newPageSource(cfg Config, noCache bool) (pageSource, *feed.Generator, error) {
	gen := feed.NewGenerator(cfg.Feed.Seed, cfg.Feed.PerPage)
	if cfg.Feed.Source == "" {
		return &generatorSource{gen: gen}, gen, nil
	}

	store, err := newCache(noCache)
	if err != nil {
		return nil, nil, err
	}
	client, err := feed.NewClient(cfg.Feed.Source, store)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("using remote feed", "source", cfg.Feed.Source)
	return &clientSource{client: client, count: cfg.Feed.PerPage}, gen, nil
}

// =============================================================================
// Page Source Implementations
// =============================================================================

// generatorSource serves pages straight from the in-process generator.
type generatorSource struct {
	gen *feed.Generator
}

func (s *generatorSource) After(_ context.Context, key string) (feed.Page, error) {
	return s.gen.After(key)
}

func (s *generatorSource) Before(_ context.Context, key string) (feed.Page, error) {
	return s.gen.Before(key)
}

// clientSource serves pages from a remote feed server with caching.
type clientSource struct {
	client *feed.Client
	count  int
}

func (s *clientSource) After(ctx context.Context, key string) (feed.Page, error) {
	p, err := s.client.Fetch(ctx, cache.FeedKeyOpts{After: key, Count: s.count}, false)
	if err != nil {
		return feed.Page{}, err
	}
	return *p, nil
}

func (s *clientSource) Before(ctx context.Context, key string) (feed.Page, error) {
	p, err := s.client.Fetch(ctx, cache.FeedKeyOpts{Before: key, Count: s.count}, false)
	if err != nil {
		return feed.Page{}, err
	}
	return *p, nil
}

// =============================================================================
// Snapshot Save / Restore
// =============================================================================

// saveStatus writes the grid's current snapshot to path.
func saveStatus(g *grid.Grid, path string) error {
	return snapshotio.ExportJSON(g.GetStatus(), path)
}

// restoreStatus loads a snapshot and restores it into g. Card elements are
// rebuilt from the deterministic generator: each snapshot item names its
// page via the group key, and items appear in rank order, so replaying the
// pages reproduces the original cards.
func restoreStatus(g *grid.Grid, gen *feed.Generator, path string) error {
	st, err := snapshotio.ImportJSON(path)
	if err != nil {
		return err
	}

	els, err := rebuildElements(st, gen)
	if err != nil {
		return err
	}
	return g.SetStatus(st, els)
}

func rebuildElements(st *grid.Status, gen *feed.Generator) ([]grid.Element, error) {
	els := make([]grid.Element, len(st.Items))
	rank := make(map[string]int)
	for i, it := range st.Items {
		if it.GroupKey == "" {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"item %s has no group key; demo snapshots always carry page keys", it.Key)
		}
		page, err := gen.PageFor(it.GroupKey)
		if err != nil {
			return nil, err
		}
		idx := rank[it.GroupKey]
		if idx >= len(page.Cards) {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot,
				"snapshot has more items in %s than the feed page holds", it.GroupKey)
		}
		rank[it.GroupKey]++
		els[i] = &cardElement{card: page.Cards[idx]}
	}
	return els, nil
}
