package app

import (
	"context"

	"github.com/yimeji/redcopy/internal/catalog"
	"github.com/yimeji/redcopy/internal/config"
	"github.com/yimeji/redcopy/internal/diagnosis"
	"github.com/yimeji/redcopy/internal/enhancer"
	"github.com/yimeji/redcopy/internal/generator"
	"github.com/yimeji/redcopy/internal/history"
	"github.com/yimeji/redcopy/internal/industry"
	"github.com/yimeji/redcopy/internal/matcher"
	"github.com/yimeji/redcopy/internal/wordlist"
)

// App is the main application container holding all dependencies.
type App struct {
	Config     *config.Config
	Industries *industry.Directory
	Engine     *diagnosis.Engine
	Matcher    *matcher.Matcher
	Generator  *generator.Generator
	Store      *history.Store

	// Enhancer is nil when no provider API key is configured.
	Enhancer *enhancer.Enhancer
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	industries := industry.LoadDirectory(cfg.IndustriesDir, cfg.DefaultIndustry)

	engine := diagnosis.New(diagnosis.Config{
		Words: func() *wordlist.Set {
			return wordlist.Load(cfg.SensitiveWordsPath)
		},
		Keywords: industries,
	})

	m := matcher.New(matcher.Config{
		Catalog: func() *catalog.Catalog {
			return catalog.Load(cfg.HotTopicsPath)
		},
	})

	gen := generator.New(generator.Config{
		Industries: industries,
		Formulas:   generator.LoadFormulas(cfg.FormulasDir),
	})

	store, err := history.NewStore(ctx, cfg.DatabasePath, cfg.MaxHistory)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	var enh *enhancer.Enhancer
	if cfg.APIKey() != "" {
		client, err := enhancer.NewClient(cfg.AIProvider, enhancer.ClientConfig{
			APIKey:      cfg.APIKey(),
			Model:       cfg.AIModel,
			MaxTokens:   cfg.AIMaxTokens,
			Temperature: cfg.AITemperature,
			Timeout:     cfg.AITimeout,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
		enh = enhancer.New(cfg.AIProvider, client)
	}

	return &App{
		Config:     cfg,
		Industries: industries,
		Engine:     engine,
		Matcher:    m,
		Generator:  gen,
		Store:      store,
		Enhancer:   enh,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
