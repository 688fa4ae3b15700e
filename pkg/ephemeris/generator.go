package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Generator writes new ephemerides with a text generation provider
type Generator struct {
	store    StoreInterface
	provider Provider
	prompt   *template.Template
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger

	// Only set when SingleFlight is enabled
	flights *singleflight.Group
}

// GeneratorOptions contains the collaborators and settings of a Generator
type GeneratorOptions struct {
	Store    StoreInterface
	Provider Provider

	PromptTemplate string         // Empty uses DefaultPromptTemplate
	Location       *time.Location // Zone used to turn instants into calendar days (UTC if nil)
	Now            func() time.Time
	Logger         *zap.Logger

	// SingleFlight collapses concurrent calls for the same day and month inside
	// this process. Separate processes can still both insert
	SingleFlight bool
}

// NewGenerator creates a generator from opts
func NewGenerator(opts *GeneratorOptions) (*Generator, error) {
	if opts == nil || opts.Store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("a valid generation provider must be provided")
	}

	tmpl, err := ParsePromptTemplate(opts.PromptTemplate)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		store:    opts.Store,
		provider: opts.Provider,
		prompt:   tmpl,
		loc:      opts.Location,
		now:      opts.Now,
		logger:   opts.Logger,
	}

	if g.loc == nil {
		g.loc = time.UTC
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.logger == nil {
		g.logger = zap.L().Named("GENERATOR")
	}
	if opts.SingleFlight {
		g.flights = &singleflight.Group{}
	}

	return g, nil
}

// GenerateForTomorrow generates the ephemeris for the day after now
func (g *Generator) GenerateForTomorrow(ctx context.Context) (*Result, error) {
	return g.GenerateForDate(ctx, g.now().In(g.loc).AddDate(0, 0, 1))
}

// GenerateForToday generates the ephemeris for the current day
func (g *Generator) GenerateForToday(ctx context.Context) (*Result, error) {
	return g.GenerateForDate(ctx, g.now())
}

// GenerateForDate generates the ephemeris for the calendar day of target in the
// generator's location
func (g *Generator) GenerateForDate(ctx context.Context, target time.Time) (*Result, error) {
	return g.GenerateForDay(ctx, DateOf(target.In(g.loc)))
}

// GenerateForDay runs the generation workflow for an explicit calendar day.
//
// The existence check and the insert are not atomic: two concurrent calls for the
// same day and month can both insert unless SingleFlight is enabled
func (g *Generator) GenerateForDay(ctx context.Context, date Date) (*Result, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}

	if g.flights == nil {
		return g.generate(ctx, date)
	}

	key := fmt.Sprintf("%d-%d", date.Day, date.Month)
	v, err, shared := g.flights.Do(key, func() (any, error) {
		return g.generate(ctx, date)
	})
	if shared {
		g.logger.Debug("joined in-flight generation", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// generate performs the sequential workflow: check, prompt, parse, normalize, insert
func (g *Generator) generate(ctx context.Context, date Date) (*Result, error) {
	logger := g.logger.With(zap.Stringer("date", date))

	existing, err := g.store.FindByDayMonth(ctx, date.Day, date.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("ephemeris already exists", zap.Uint("id", existing.ID))
		return &Result{Status: StatusDuplicate, Date: date}, nil
	}

	prompt, err := BuildPrompt(g.prompt, date)
	if err != nil {
		return nil, err
	}

	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		return nil, &ProviderError{Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return nil, &ProviderError{Err: errors.New("empty response")}
	}

	fact, err := ParseGeneratedFact(raw)
	if err != nil {
		logger.Warn("provider returned malformed content", zap.Error(err))
		return nil, err
	}

	// Store errors are returned as-is so callers see the store's own message
	inserted, err := g.store.Insert(ctx, fact.ToRecord(date))
	if err != nil {
		return nil, err
	}

	logger.Info("ephemeris generated", zap.Uint("id", inserted.ID), zap.String("event", inserted.Title()))

	return &Result{
		Status:      StatusCreated,
		Date:        date,
		Record:      inserted,
		GeneratedAt: g.now().UTC(),
	}, nil
}
