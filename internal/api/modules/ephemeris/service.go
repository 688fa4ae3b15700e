package ephemeris_module

import (
	"errors"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"go.uber.org/zap"
)

// Service holds what the ephemeris handlers need
type Service struct {
	catalog   *ephemeris.Catalog
	generator *ephemeris.Generator
	relay     *sdk.Client
	apiKey    string
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// Options contains the collaborators of the ephemeris module
type Options struct {
	Catalog *ephemeris.Catalog // Required

	// Generator serves the protected entrypoint. When nil the route is not registered
	Generator       *ephemeris.Generator
	GeneratorAPIKey string

	// Relay points at the generator entrypoint the relay forwards to. When nil the
	// relay answers with a configuration error
	Relay *sdk.Client

	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

// NewService creates the service for the ephemeris routes
func NewService(opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, errors.New("a valid catalog must be provided")
	}
	if opts.Generator != nil && opts.GeneratorAPIKey == "" {
		return nil, errors.New("the generator entrypoint requires an API key")
	}

	s := &Service{
		catalog:   opts.Catalog,
		generator: opts.Generator,
		relay:     opts.Relay,
		apiKey:    opts.GeneratorAPIKey,
		loc:       opts.Location,
		now:       opts.Now,
		logger:    opts.Logger,
	}

	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = logging.Named("API-EPHEMERIS")
	}

	return s, nil
}

// today returns the current instant in the service's location
func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}
