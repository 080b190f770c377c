package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/auslib/core/logger"
	"github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/core/model"
)

// Mode selects how a batch compilation reacts to a failing ruleset.
type Mode int

const (
	// FailFast aborts the batch on the first failing ruleset.
	FailFast Mode = iota
	// Collect compiles every ruleset and reports failures per key.
	Collect
)

// ParseMode reads "fail_fast" or "collect".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "fail_fast":
		return FailFast, nil
	case "collect":
		return Collect, nil
	default:
		return 0, fmt.Errorf("unknown compile mode %q", s)
	}
}

func (m Mode) String() string {
	if m == Collect {
		return "collect"
	}
	return "fail_fast"
}

// Compiler turns grouped schedule rows into rulesets. It holds no state
// between calls and may be shared by concurrent callers.
type Compiler struct {
	dispatcher   *Dispatcher
	allowPartial bool
	log          logger.Logger
	sink         metrics.MetricsSink
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithDispatcher replaces the built-in day-type table.
func WithDispatcher(d *Dispatcher) Option { return func(c *Compiler) { c.dispatcher = d } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(c *Compiler) { c.log = logger.OrNop(l) } }

// WithMetrics sets the sink receiving one event per compiled group.
func WithMetrics(s metrics.MetricsSink) Option {
	return func(c *Compiler) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithPartialProfiles accepts day profiles that stop before 24:00.
func WithPartialProfiles(allow bool) Option { return func(c *Compiler) { c.allowPartial = allow } }

// NewCompiler creates a compiler using the built-in day types unless a
// dispatcher is supplied.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		dispatcher: NewDispatcher(),
		log:        logger.Nop{},
		sink:       metrics.NopSink{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileGroup builds the ruleset of one group. Every day bucket becomes a
// profile named "<key> <day type>" and is installed by its day-type
// strategy. The group must end up with a default day.
func (c *Compiler) CompileGroup(g Group) (rs Ruleset, err error) {
	start := time.Now()
	defer func() {
		ev := metrics.CompileEvent{
			Key:      g.Key,
			Profiles: len(g.Days),
			Rules:    len(rs.Rules),
			ErrKind:  ErrorKind(err),
			Duration: time.Since(start),
			Time:     start,
		}
		if serr := c.sink.RecordCompile(ev); serr != nil {
			c.log.Warnf("record compile %s: %v", g.Key, serr)
		}
	}()

	var opts []BuildOption
	if c.allowPartial {
		opts = append(opts, AllowPartial())
	}
	b := &rulesetBuilder{rs: Ruleset{Name: g.Key}}
	for _, day := range g.Days {
		strategy, err := c.dispatcher.Dispatch(day.DayType)
		if err != nil {
			return Ruleset{}, fmt.Errorf("ruleset %q: %w", g.Key, err)
		}
		profile, err := BuildProfile(g.Key+" "+day.DayType, day.Segments, opts...)
		if err != nil {
			return Ruleset{}, fmt.Errorf("ruleset %q: %w", g.Key, err)
		}
		if n := len(profile.Breakpoints); !profile.Complete() {
			end := Midnight
			if n > 0 {
				end = profile.Breakpoints[n-1].Until
			}
			c.log.Warnf("ruleset %s: profile %q stops at %s", g.Key, profile.Name, end)
		}
		strategy.apply(b, day.DayType, profile)
	}
	if b.defaultLabel == "" {
		return Ruleset{}, &EmptyRulesetError{Key: g.Key}
	}
	if len(b.overwritten) > 0 {
		c.log.Warnf("ruleset %s: default day %v replaced by %q", g.Key, b.overwritten, b.defaultLabel)
	}
	c.log.Debugw("ruleset compiled", map[string]any{
		"key":      g.Key,
		"default":  b.defaultLabel,
		"rules":    len(b.rs.Rules),
		"profiles": len(g.Days),
	})
	return b.rs, nil
}

// Compile builds one ruleset per group. In FailFast mode the first error is
// returned with a nil result. In Collect mode the successful rulesets are
// returned together with a *BatchError listing the failed keys.
func (c *Compiler) Compile(groups []Group, mode Mode) (Rulesets, error) {
	out := make(Rulesets, len(groups))
	failed := make(map[string]error)
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if seen[g.Key] {
			return nil, fmt.Errorf("duplicate ruleset key %q", g.Key)
		}
		seen[g.Key] = true
		rs, err := c.CompileGroup(g)
		if err != nil {
			if mode == FailFast {
				return nil, err
			}
			failed[g.Key] = err
			continue
		}
		out[g.Key] = rs
	}
	if len(failed) > 0 {
		return out, &BatchError{Errors: failed}
	}
	return out, nil
}

// CompileRows groups rows and compiles the groups. Row errors such as a
// missing field abort regardless of mode since they cannot be attributed
// to a ruleset.
func (c *Compiler) CompileRows(rows []model.ScheduleRow, mode Mode) (Rulesets, error) {
	groups, err := GroupRows(rows)
	if err != nil {
		return nil, err
	}
	return c.Compile(groups, mode)
}
