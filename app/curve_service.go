package app

import (
	"context"
	"fmt"
	"time"

	"titrate/domain/core"
	"titrate/domain/titration"
	"titrate/internal"
	"titrate/internal/chem"
	"titrate/internal/errors"
	"titrate/internal/profiling"
	"titrate/ports"
)

// CurveService sweeps titrant volume, builds the pH curve and its summary,
// and hands the result to the configured sinks and archive.
type CurveService struct {
	sinks    []ports.ChartSink
	archive  ports.RunArchive
	profiler *profiling.CurveProfiler
	workers  int
	logger   *internal.Logger
}

// NewCurveService creates a curve service. archive may be nil.
func NewCurveService(workers int, logger *internal.Logger, archive ports.RunArchive, sinks ...ports.ChartSink) *CurveService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CurveService{
		sinks:    sinks,
		archive:  archive,
		profiler: profiling.NewCurveProfiler(),
		workers:  workers,
		logger:   logger.With("CurveService"),
	}
}

func setup(s titration.Scenario) (chem.Reaction, chem.Selector, error) {
	if err := s.Validate(); err != nil {
		return chem.Reaction{}, chem.Selector{}, errors.FromDomain(err)
	}
	sel, err := chem.NewSelector(s.Type(), s.Kind, s.K)
	if err != nil {
		return chem.Reaction{}, chem.Selector{}, err
	}
	reaction := chem.Reaction{
		Ratio:    s.Ratio,
		CAnalyte: s.CAnalyte,
		CTitrant: s.CTitrant,
		VAnalyte: s.VAnalyte,
		Unit:     s.Unit,
	}
	return reaction, sel, nil
}

// Run computes the titration curve for s. Weak/weak scenarios are rejected
// before any sampling. The run is rendered to every sink and archived when
// an archive is configured.
func (cs *CurveService) Run(ctx context.Context, s titration.Scenario) (*titration.Run, error) {
	started := time.Now()
	reaction, sel, err := setup(s)
	if err != nil {
		return nil, err
	}

	volumes := SampleVolumes(s)
	cs.logger.Debug("sweeping %d volumes from %g to %g %s (%s)", len(volumes), s.InitialVol, s.FinalVol, s.Unit, s.Type().Label())

	ph, err := evaluate(ctx, reaction, sel, volumes, cs.workers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate titration curve")
	}
	curve, discarded := retain(volumes, ph)
	if curve.Len() == 0 {
		return nil, errors.EmptyResult(fmt.Sprintf("all %d sampled points fell outside pH %g-%g", len(volumes), titration.MinPH, titration.MaxPH))
	}
	if discarded > 0 {
		cs.logger.Debug("discarded %d of %d samples outside the pH scale", discarded, len(volumes))
	}

	summary, err := cs.summarize(reaction, sel, s, curve)
	if err != nil {
		return nil, err
	}
	summary.Stats.Discarded = discarded

	fingerprint, err := core.Fingerprint(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fingerprint scenario")
	}
	run := &titration.Run{
		ID:          core.NewRunID(),
		Fingerprint: fingerprint,
		Scenario:    s,
		Curve:       curve,
		Summary:     summary,
		CreatedAt:   time.Now().UTC(),
	}

	chart := run.Chart()
	for _, sink := range cs.sinks {
		if err := sink.Render(ctx, chart); err != nil {
			return nil, errors.Wrapf(err, "%s sink failed", sink.Name())
		}
		cs.logger.Info("rendered chart to %s", sink.Name())
	}

	if cs.archive != nil {
		if err := cs.archive.Save(ctx, run); err != nil {
			return nil, errors.Wrap(err, "failed to archive run")
		}
		cs.logger.Info("archived run %s", run.ID)
	}

	cs.logger.Info("run %s (%s): %d points in %s", run.ID, fingerprint.Short(), curve.Len(), time.Since(started).Round(time.Microsecond))
	return run, nil
}

// summarize computes the equivalence figures. The titrant needed is taken
// from the reaction at the scenario's VTitrant; it does not depend on it.
func (cs *CurveService) summarize(reaction chem.Reaction, sel chem.Selector, s titration.Scenario, curve titration.Curve) (titration.Summary, error) {
	ref, err := reaction.At(s.VTitrant)
	if err != nil {
		return titration.Summary{}, err
	}
	summary := titration.Summary{
		InitialPH:          curve.PH[0],
		FinalPH:            curve.PH[curve.Len()-1],
		TitrantVolNeededML: titration.Milliliters.FromLiters(ref.TitrantVolNeededL),
		TitrantMolNeeded:   ref.TitrantMolNeeded,
		EquivalencePH:      titration.Neutral,
	}

	needed := s.Unit.FromLiters(ref.TitrantVolNeededL)
	if s.Type().IsWeakStrong() {
		eq, err := reaction.At(needed)
		if err != nil {
			return titration.Summary{}, err
		}
		summary.EquivalencePH, err = chem.EquivalencePH(s.Kind, s.K, eq.SaltConc())
		if err != nil {
			return titration.Summary{}, err
		}
	}

	summary.Stats, err = cs.profiler.Profile(curve)
	if err != nil {
		return titration.Summary{}, errors.Wrap(err, "failed to profile curve")
	}

	half, err := reaction.At(needed / 2)
	if err != nil {
		return titration.Summary{}, err
	}
	if v, err := sel.PH(half); err == nil && titration.InScale(v) {
		summary.Stats.HalfEquivalencePH = v
	}
	return summary, nil
}

// Probe evaluates a single titrant volume without sweeping.
func (cs *CurveService) Probe(s titration.Scenario, vTitrant float64) (titration.Sample, error) {
	reaction, sel, err := setup(s)
	if err != nil {
		return titration.Sample{}, err
	}
	state, err := reaction.At(vTitrant)
	if err != nil {
		return titration.Sample{}, err
	}
	ph, err := sel.PH(state)
	if err != nil {
		return titration.Sample{}, err
	}
	return titration.Sample{Volume: vTitrant, PH: ph, InScale: titration.InScale(ph), State: state}, nil
}

// Archive exposes the configured run archive, nil when archiving is off
func (cs *CurveService) Archive() ports.RunArchive {
	return cs.archive
}
