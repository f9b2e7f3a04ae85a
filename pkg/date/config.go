package date

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"time"
	_ "time/tzdata" // allowlisted zones must load without a system zoneinfo
)

// DefaultTimezone is used when TIME_ZONE is unset.
const DefaultTimezone = "UTC"

var timezonePattern = regexp.MustCompile(`^(UTC|GMT|[A-Za-z]+/[A-Za-z_]+)$`)

// https://en.wikipedia.org/wiki/List_of_tz_database_time_zones
var validTimezones = map[string]bool{
	"UTC": true,
	"GMT": true,

	"Asia/Tokyo":     true,
	"Asia/Shanghai":  true,
	"Asia/Singapore": true,
	"Asia/Seoul":     true,
	"Asia/Hong_Kong": true,
	"Asia/Dubai":     true,
	"Asia/Kolkata":   true,
	"Asia/Jakarta":   true,

	"America/New_York":    true,
	"America/Los_Angeles": true,
	"America/Chicago":     true,
	"America/Denver":      true,
	"America/Toronto":     true,
	"America/Vancouver":   true,
	"America/Sao_Paulo":   true,

	"Europe/London":    true,
	"Europe/Paris":     true,
	"Europe/Berlin":    true,
	"Europe/Rome":      true,
	"Europe/Amsterdam": true,
	"Europe/Moscow":    true,

	"Australia/Sydney":    true,
	"Australia/Melbourne": true,
	"Australia/Perth":     true,
	"Pacific/Auckland":    true,

	"Africa/Cairo": true,
}

// Config holds the date server settings.
type Config struct {
	Timezone string `json:"timezone"`
}

// LoadConfig reads TIME_ZONE, defaulting to UTC.
func LoadConfig() (Config, error) {
	tz := os.Getenv("TIME_ZONE")
	if tz == "" {
		tz = DefaultTimezone
	}
	if !IsValidTimezone(tz) {
		return Config{}, invalidTimezone(tz)
	}
	return Config{Timezone: tz}, nil
}

// IsValidTimezone reports whether tz is one of the supported zones.
func IsValidTimezone(tz string) bool {
	return timezonePattern.MatchString(tz) && validTimezones[tz]
}

// ValidTimezones returns the supported zones, sorted.
func ValidTimezones() []string {
	zones := make([]string, 0, len(validTimezones))
	for tz := range validTimezones {
		zones = append(zones, tz)
	}
	slices.Sort(zones)
	return zones
}

// LoadLocation validates tz and loads it.
func LoadLocation(tz string) (*time.Location, error) {
	if !IsValidTimezone(tz) {
		return nil, invalidTimezone(tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, tz, err)
	}
	return loc, nil
}

func invalidTimezone(tz string) error {
	return fmt.Errorf("%w: %q, use a supported IANA timezone identifier (e.g. \"UTC\", \"Asia/Tokyo\")", ErrInvalidTimezone, tz)
}
