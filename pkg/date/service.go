package date

import "time"

// Layout is the output format of resolved dates.
const Layout = "2006-01-02"

// Format renders t as a calendar date in loc.
func Format(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(Layout)
}

// Result is the outcome of resolving an expression. Failures are reported in
// Error rather than returned, with zero confidence.
type Result struct {
	Success    bool    `json:"success"`
	Date       string  `json:"date,omitempty"`
	Error      string  `json:"error,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Service runs the parse, resolve and format steps.
type Service struct {
	config   Config
	resolver *Resolver
}

// NewService creates a service. A nil resolver uses the wall clock.
func NewService(config Config, resolver *Resolver) *Service {
	if config.Timezone == "" {
		config.Timezone = DefaultTimezone
	}
	if resolver == nil {
		resolver = NewResolver()
	}
	return &Service{config: config, resolver: resolver}
}

// Config returns a copy of the service settings.
func (s *Service) Config() Config {
	return s.config
}

// ResolveTime parses and resolves expression in timezone, falling back to the
// configured zone when timezone is empty.
func (s *Service) ResolveTime(expression, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = s.config.Timezone
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	expr, err := Parse(expression)
	if err != nil {
		return time.Time{}, err
	}
	return s.resolver.Resolve(expr, loc)
}

// Resolve converts expression to a YYYY-MM-DD date.
func (s *Service) Resolve(expression, timezone string) Result {
	if timezone == "" {
		timezone = s.config.Timezone
	}
	t, err := s.ResolveTime(expression, timezone)
	if err != nil {
		return Result{Success: false, Error: err.Error(), Confidence: 0}
	}
	return Result{
		Success:    true,
		Date:       Format(t, t.Location()),
		Timezone:   timezone,
		Confidence: 1.0,
	}
}
