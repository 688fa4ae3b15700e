package ephemeris

import (
	"fmt"
	"strings"
	"text/template"
)

// DefaultPromptTemplate asks for a single technology fact as a bare JSON object.
// Templates receive a PromptData value
const DefaultPromptTemplate = `Generate a relevant historical ephemeris for {{.Day}} {{.MonthName}} {{.Year}}.

The ephemeris must be:
- Historically accurate and verifiable
- Related to technology, programming, computing or innovation
- Interesting and significant
- Dated exactly (day, month, year)

Respond ONLY with a JSON object with this structure:
{
  "event": "Title of the event",
  "description": "Detailed description of the historical event",
  "historical_day": {{.Day}},
  "historical_month": {{.Month}},
  "historical_year": {{.Year}},
  "significance": "Why this event matters"
}`

// PromptData is the value a prompt template is executed with
type PromptData struct {
	Day       int
	Month     int
	Year      int
	MonthName string
}

// ParsePromptTemplate compiles a prompt template, using the default when text is empty
func ParsePromptTemplate(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultPromptTemplate
	}

	tmpl, err := template.New("ephemeris-prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	return tmpl, nil
}

// BuildPrompt renders the prompt for date
func BuildPrompt(tmpl *template.Template, date Date) (string, error) {
	var sb strings.Builder

	data := PromptData{
		Day:       date.Day,
		Month:     date.Month,
		Year:      date.Year,
		MonthName: date.MonthName(),
	}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return sb.String(), nil
}
