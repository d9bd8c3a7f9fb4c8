package travel

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CronConfig is a cron destination as accepted by the control API.
type CronConfig struct {
	Cron     string `json:"cron"`
	Timezone string `json:"timezone,omitempty"`
}

// ParseCronConfig decodes a CronConfig and checks that an expression is set.
func ParseCronConfig(configJSON json.RawMessage) (*CronConfig, error) {
	var config CronConfig
	if err := json.Unmarshal(configJSON, &config); err != nil {
		return nil, fmt.Errorf("failed to parse cron config: %w", err)
	}

	if config.Cron == "" {
		return nil, fmt.Errorf("cron expression is required")
	}

	return &config, nil
}

var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextFireTime returns the first time after from that cronExpr fires,
// evaluated in timezone (UTC when empty). The result is in UTC.
func NextFireTime(cronExpr string, timezone string, from time.Time) (time.Time, error) {
	seq, err := Cron(cronExpr, timezone, from)
	if err != nil {
		return time.Time{}, err
	}
	return seq.Next().(time.Time), nil
}

// CronSequence is a Sequence of the fire times of a cron schedule. Each
// traveller sent to it lands on the next fire time.
type CronSequence struct {
	schedule cron.Schedule
	loc      *time.Location

	mu   sync.Mutex
	last time.Time
}

// Cron returns the fire times of cronExpr after from, evaluated in timezone
// (UTC when empty).
func Cron(cronExpr string, timezone string, from time.Time) (*CronSequence, error) {
	loc, err := resolveTimezone(timezone)
	if err != nil {
		return nil, err
	}
	schedule, err := cronParser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return &CronSequence{schedule: schedule, loc: loc, last: from}, nil
}

// Next returns the next fire time as a time.Time in UTC.
func (c *CronSequence) Next() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = c.schedule.Next(c.last.In(c.loc)).UTC()
	return c.last
}

// resolveTimezone resolves a timezone string to a time.Location.
// Empty string defaults to UTC.
func resolveTimezone(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", tz, err)
	}
	return loc, nil
}
