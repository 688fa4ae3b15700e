package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/logging"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"go.uber.org/zap"
)

// DefaultStepDelay is the pause between two lines of the boot sequence
const DefaultStepDelay = 800 * time.Millisecond

// Backend is the part of the API the console talks to
type Backend interface {
	ListEphemerides(ctx context.Context) ([]*ephemeris.Record, error)
	Refresh(ctx context.Context) (*sdk.RefreshResponse, error)
	Generate(ctx context.Context, req *sdk.GenerateRequest) (*sdk.GeneratorResponse, error)
}

// Options configures a console session
type Options struct {
	In      io.Reader
	Out     io.Writer
	Backend Backend

	Location  *time.Location
	Now       func() time.Time
	Random    ephemeris.RandomSource
	StepDelay time.Duration
}

// Console is an interactive terminal session. It keeps its own copy of the records,
// loaded at boot and replaced by refresh-db
type Console struct {
	in      io.Reader
	out     io.Writer
	backend Backend
	loc     *time.Location
	now     func() time.Time
	rnd     ephemeris.RandomSource
	delay   time.Duration
	logger  *zap.Logger

	records []*ephemeris.Record
}

// New creates a console session from opts
func New(opts Options) (*Console, error) {
	if opts.Backend == nil {
		return nil, errors.New("a valid backend must be provided")
	}
	if opts.In == nil || opts.Out == nil {
		return nil, errors.New("console input and output must be provided")
	}

	c := &Console{
		in:      opts.In,
		out:     opts.Out,
		backend: opts.Backend,
		loc:     opts.Location,
		now:     opts.Now,
		rnd:     opts.Random,
		delay:   opts.StepDelay,
		logger:  logging.Named("CONSOLE"),
	}

	if c.loc == nil {
		c.loc = time.UTC
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rnd == nil {
		c.rnd = ephemeris.DefaultRandom
	}
	if c.delay <= 0 {
		c.delay = DefaultStepDelay
	}

	return c, nil
}

// Run plays the boot sequence, shows today's fact and then reads commands until
// exit, end of input or ctx is cancelled
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(c.delay)
	defer ticker.Stop()

	if err := c.boot(ctx, ticker); err != nil {
		return err
	}

	// The reader stops at the next line or at end of input. A Scan blocked on a
	// terminal outlives Run until then, which only matters for in-process callers
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		c.print("$ ")

		select {
		case <-ctx.Done():
			c.println("")
			return nil
		case line, ok := <-lines:
			if !ok {
				c.println("")
				return nil
			}
			if quit := c.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// boot plays the startup lines one tick apart, then shows the resolved fact
func (c *Console) boot(ctx context.Context, ticker *time.Ticker) error {
	steps := []func(){
		func() { c.println("NOSTROMO MAINFRAME v2.1.7") },
		func() { c.println("Initializing system...") },
		func() {
			c.println("Loading ephemeris database...")
			c.load(ctx)
		},
		func() { c.println("Connecting to historical archives...") },
		func() { c.println("System ready."); c.println("") },
	}
	steps = append(steps, c.querySteps()...)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		step()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// querySteps prints the fact resolved for today from the session's records
func (c *Console) querySteps() []func() {
	var res ephemeris.Resolution

	steps := []func(){
		func() {
			res = ephemeris.Resolve(c.records, ephemeris.DateOf(c.now().In(c.loc)), c.rnd)
			c.println("$ ./ephemeris_query --date=today")
		},
		func() { c.println("Querying database...") },
		func() {
			switch {
			case res.Record == nil:
				c.println("No entries found.")
			case res.Matched:
				c.println("Found entry:")
			default:
				c.println("No entry for today. Random archive entry:")
			}
		},
		func() {
			if res.Record == nil {
				return
			}
			c.printRecord(res.Record)
			c.println("Query completed successfully.")
			c.println("")
		},
	}

	return steps
}

func (c *Console) printRecord(r *ephemeris.Record) {
	c.println("")
	c.printf("DATE: %d/%d/%d\n", r.HistoricalDay, r.HistoricalMonth, r.HistoricalYear)
	c.printf("EVENT: %s\n", r.Title())
	if r.Description != nil && *r.Description != "" {
		c.printf("DESCRIPTION: %s\n", *r.Description)
	}
	c.println("")
	c.println("DISPLAY DATE:")
	c.println(r.DisplayDate)
	c.println("")
}

// load replaces the session's records. Failures are reported, never fatal
func (c *Console) load(ctx context.Context) bool {
	records, err := c.backend.ListEphemerides(ctx)
	if err != nil {
		c.logger.Warn("failed to load ephemerides", zap.Error(err))
		c.printf("ERROR: could not load ephemerides: %s\n", errorMessage(err))
		return false
	}

	c.records = records
	return true
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// errorMessage prefers the backend's own message over the transport error
func errorMessage(err error) string {
	var httpErr *sdk.HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return fmt.Sprintf("backend returned status %d", httpErr.StatusCode)
	}
	return strings.TrimSpace(err.Error())
}
