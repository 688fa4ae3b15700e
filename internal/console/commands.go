package console

import (
	"context"
	"strings"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"go.uber.org/zap"
)

const clearScreen = "\033[H\033[2J"

// HelpText lists the available commands
const HelpText = "Available commands: clear, help, date, refresh-db, generate, exit"

// handle runs one command line and reports whether the session should end
func (c *Console) handle(ctx context.Context, line string) bool {
	cmd := strings.ToLower(strings.TrimSpace(line))

	switch cmd {
	case "":
	case "help":
		c.println(HelpText)
	case "clear":
		c.print(clearScreen)
	case "date":
		c.println(c.now().In(c.loc).Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
	case "refresh-db":
		c.refresh(ctx)
	case "generate":
		c.generate(ctx)
	case "exit", "quit":
		c.println("Goodbye.")
		return true
	default:
		c.printf("Command not found: %s\n", strings.TrimSpace(line))
	}

	return false
}

// refresh makes the backend reload from the store, then reloads the session
func (c *Console) refresh(ctx context.Context) {
	c.println("Refreshing ephemeris database...")
	if _, err := c.backend.Refresh(ctx); err != nil {
		c.logger.Warn("failed to refresh backend", zap.Error(err))
		c.printf("ERROR: could not refresh ephemerides: %s\n", errorMessage(err))
		return
	}
	if c.load(ctx) {
		c.printf("Database refreshed successfully (%d entries)\n", len(c.records))
	}
}

// generate asks the relay for tomorrow's ephemeris unless the session already has one
func (c *Console) generate(ctx context.Context) {
	tomorrow := ephemeris.DateOf(c.now().In(c.loc).AddDate(0, 0, 1))

	if ephemeris.FindForDate(c.records, tomorrow) != nil {
		c.printf("An ephemeris for %s already exists\n", tomorrow)
		return
	}

	c.printf("Generating ephemeris for %s...\n", tomorrow)
	resp, err := c.backend.Generate(ctx, &sdk.GenerateRequest{
		TargetDate: tomorrow.Time(c.loc).Format("2006-01-02"),
		Day:        tomorrow.Day,
		Month:      tomorrow.Month,
		Year:       tomorrow.Year,
	})
	if err != nil {
		c.printf("ERROR: %s\n", errorMessage(err))
		return
	}

	if resp.Ephemeris == nil {
		c.println(resp.Message)
		return
	}

	c.printf("Ephemeris generated successfully for %s: %s\n", tomorrow, resp.Ephemeris.Title())
	c.println("Run refresh-db to load it.")
}
