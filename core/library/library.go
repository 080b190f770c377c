// Package library applies a decoded workbook to a building model: it
// compiles the schedule rows into rulesets, then materialises schedule sets,
// load definitions and space types in dependency order.
package library

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/auslib/core/logger"
	"github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/core/model"
	"github.com/kilianp07/auslib/core/schedule"
)

// Report summarises one run.
type Report struct {
	Counts map[Kind]int
	// CompileErrors holds failed ruleset keys. Only filled in collect mode.
	CompileErrors map[string]error
	// Errors holds objects that could not be materialised, keyed by
	// "<kind>/<name>". Only filled in collect mode.
	Errors map[string]error
}

func newReport() *Report {
	return &Report{
		Counts:        make(map[Kind]int),
		CompileErrors: make(map[string]error),
		Errors:        make(map[string]error),
	}
}

// Failed reports whether anything was skipped.
func (r *Report) Failed() bool { return len(r.CompileErrors)+len(r.Errors) > 0 }

// Library applies workbooks to a model.
type Library struct {
	model    Model
	compiler *schedule.Compiler
	mode     schedule.Mode
	complex  []schedule.ComplexSchedule
	log      logger.Logger
	sink     metrics.MetricsSink
}

// Option configures a Library.
type Option func(*Library)

// WithCompiler sets the schedule compiler and the batch mode. The mode also
// governs materialisation: collect mode records failing objects and goes on.
func WithCompiler(c *schedule.Compiler, mode schedule.Mode) Option {
	return func(l *Library) {
		if c != nil {
			l.compiler = c
		}
		l.mode = mode
	}
}

// WithComplexSchedules adds rulesets defined in configuration rather than
// in the schedules sheet.
func WithComplexSchedules(cs []schedule.ComplexSchedule) Option {
	return func(l *Library) { l.complex = cs }
}

// WithLogger sets the logger.
func WithLogger(lg logger.Logger) Option { return func(l *Library) { l.log = logger.OrNop(lg) } }

// WithMetrics sets the sink receiving materialisation events when it
// implements metrics.MaterializeRecorder.
func WithMetrics(s metrics.MetricsSink) Option {
	return func(l *Library) {
		if s != nil {
			l.sink = s
		}
	}
}

// New returns a Library writing to m.
func New(m Model, opts ...Option) *Library {
	l := &Library{
		model:    m,
		compiler: schedule.NewCompiler(),
		log:      logger.Nop{},
		sink:     metrics.NopSink{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Compile compiles the schedules sheet and the complex schedules into
// rulesets. In collect mode failed keys are returned in a *schedule.BatchError
// alongside the rulesets that did compile.
func (l *Library) Compile(wb *model.Workbook) (schedule.Rulesets, error) {
	rulesets, err := l.compiler.CompileRows(wb.Schedules, l.mode)
	var batch *schedule.BatchError
	if err != nil && !errors.As(err, &batch) {
		return nil, fmt.Errorf("compile schedules: %w", err)
	}
	if rulesets == nil {
		rulesets = make(schedule.Rulesets)
	}
	for _, cs := range l.complex {
		rs, cerr := schedule.BuildComplex(cs)
		if cerr != nil {
			return nil, cerr
		}
		if _, dup := rulesets[rs.Name]; dup {
			return nil, fmt.Errorf("schedule %q defined both in the workbook and in configuration", rs.Name)
		}
		rulesets[rs.Name] = rs
	}
	if batch != nil {
		return rulesets, batch
	}
	return rulesets, nil
}

// Apply materialises wb into the model. In fail-fast mode the first error
// aborts the run; the returned report still counts what was added before.
func (l *Library) Apply(ctx context.Context, wb *model.Workbook) (*Report, error) {
	rep := newReport()
	rulesets, err := l.Compile(wb)
	var batch *schedule.BatchError
	if errors.As(err, &batch) {
		for key, e := range batch.Errors {
			rep.CompileErrors[key] = e
		}
		l.log.Warnf("library: %d ruleset(s) failed to compile", len(batch.Errors))
	} else if err != nil {
		return rep, err
	}

	for _, rs := range rulesets.Sorted() {
		if err := l.add(ctx, rep, KindRuleset, rs.Name, rs); err != nil {
			return rep, err
		}
	}
	for _, set := range wb.ScheduleSets {
		if err := l.applyScheduleSet(ctx, rep, set); err != nil {
			return rep, err
		}
	}
	for _, p := range wb.People {
		if err := l.add(ctx, rep, KindPeople, p.Name, p); err != nil {
			return rep, err
		}
	}
	for _, li := range wb.Lights {
		if err := l.add(ctx, rep, KindLights, li.Name, li); err != nil {
			return rep, err
		}
	}
	for _, e := range wb.Equipment {
		if err := l.add(ctx, rep, KindEquipment, e.Name, e); err != nil {
			return rep, err
		}
	}
	for _, inf := range wb.Infiltration {
		if err := l.add(ctx, rep, KindInfiltration, inf.Name, inf); err != nil {
			return rep, err
		}
	}
	for _, oa := range wb.OutdoorAir {
		if err := l.add(ctx, rep, KindOutdoorAir, oa.Name, oa); err != nil {
			return rep, err
		}
	}
	for _, st := range wb.SpaceTypes {
		if err := l.applySpaceType(ctx, rep, st); err != nil {
			return rep, err
		}
	}
	l.log.Infof("library applied: %s", summary(rep))
	return rep, nil
}

func (l *Library) applyScheduleSet(ctx context.Context, rep *Report, set model.ScheduleSet) error {
	obj := ScheduleSetObject{Name: set.Name, Schedules: make(map[string]Handle)}
	for _, ref := range set.References() {
		h, err := l.resolve(ctx, KindRuleset, ref)
		if err != nil {
			return l.fail(rep, KindScheduleSet, set.Name, err)
		}
		obj.Schedules[ref.Role] = h
	}
	return l.add(ctx, rep, KindScheduleSet, set.Name, obj)
}

func (l *Library) applySpaceType(ctx context.Context, rep *Report, st model.SpaceType) error {
	obj := SpaceTypeObject{Name: st.Name}
	targets := map[string]*Handle{
		"lights":       &obj.Lights,
		"equipment":    &obj.Equipment,
		"people":       &obj.People,
		"infiltration": &obj.Infiltration,
		"schedule_set": &obj.ScheduleSet,
		"outdoor_air":  &obj.OutdoorAir,
	}
	for _, r := range spaceTypeRefs(st) {
		h, err := l.resolve(ctx, r.kind, r.ref)
		if err != nil {
			return l.fail(rep, KindSpaceType, st.Name, err)
		}
		*targets[r.ref.Role] = h
	}
	return l.add(ctx, rep, KindSpaceType, st.Name, obj)
}

func (l *Library) resolve(ctx context.Context, kind Kind, ref model.Reference) (Handle, error) {
	h, err := l.model.Lookup(ctx, kind, ref.Name)
	if errors.Is(err, ErrNotFound) {
		return Handle{}, &UnresolvedReferenceError{Kind: kind, Role: ref.Role, Name: ref.Name, Err: err}
	}
	return h, err
}

func (l *Library) add(ctx context.Context, rep *Report, kind Kind, name string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return l.fail(rep, kind, name, errors.New("name is required"))
	}
	if _, err := l.model.Add(ctx, kind, name, payload); err != nil {
		return l.fail(rep, kind, name, err)
	}
	rep.Counts[kind]++
	l.record(kind, name, nil)
	return nil
}

// fail records a materialisation failure. It returns the error in fail-fast
// mode and nil in collect mode. Context errors always abort.
func (l *Library) fail(rep *Report, kind Kind, name string, err error) error {
	l.record(kind, name, err)
	err = fmt.Errorf("%s %q: %w", kind, name, err)
	if l.mode == schedule.FailFast || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	l.log.Warnf("library: skipped %v", err)
	rep.Errors[string(kind)+"/"+name] = err
	return nil
}

func (l *Library) record(kind Kind, name string, err error) {
	rec, ok := l.sink.(metrics.MaterializeRecorder)
	if !ok {
		return
	}
	ev := metrics.MaterializeEvent{Kind: string(kind), Name: name, Err: err, Time: time.Now()}
	if serr := rec.RecordMaterialize(ev); serr != nil {
		l.log.Warnf("record materialize %s/%s: %v", kind, name, serr)
	}
}

func summary(rep *Report) string {
	kinds := make([]string, 0, len(rep.Counts))
	for k := range rep.Counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	s := ""
	for i, k := range kinds {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", k, rep.Counts[Kind(k)])
	}
	if n := len(rep.CompileErrors) + len(rep.Errors); n > 0 {
		s += fmt.Sprintf(" (%d skipped)", n)
	}
	return s
}
