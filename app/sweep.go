package app

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"titrate/domain/titration"
	"titrate/internal/chem"
)

// sweepBatch is how many volumes one worker evaluates per semaphore slot
const sweepBatch = 256

// SampleVolumes lists the titrant volumes a sweep visits. Volumes accumulate
// by repeated addition of the increment, so the last one may stop short of
// FinalVol when the sum overshoots it.
func SampleVolumes(s titration.Scenario) []float64 {
	if !(s.Increment > 0) {
		return nil
	}
	volumes := make([]float64, 0, s.SampleCount()+1)
	for added := s.InitialVol; added <= s.FinalVol; added += s.Increment {
		volumes = append(volumes, added)
	}
	return volumes
}

// evaluate computes the pH at every volume, in parallel batches bounded by
// workers. Results are written by index so ordering follows volumes.
func evaluate(ctx context.Context, reaction chem.Reaction, sel chem.Selector, volumes []float64, workers int) ([]float64, error) {
	if workers < 1 {
		workers = 1
	}
	ph := make([]float64, len(volumes))
	sem := semaphore.NewWeighted(int64(workers))
	g, gctx := errgroup.WithContext(ctx)

	for start := 0; start < len(volumes); start += sweepBatch {
		end := start + sweepBatch
		if end > len(volumes) {
			end = len(volumes)
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		lo, hi := start, end
		g.Go(func() error {
			defer sem.Release(1)
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				state, err := reaction.At(volumes[i])
				if err != nil {
					return err
				}
				v, err := sel.PH(state)
				if err != nil {
					return err
				}
				ph[i] = v
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ph, nil
}

// retain keeps the samples on the pH scale and reports how many were dropped
func retain(volumes, ph []float64) (titration.Curve, int) {
	var c titration.Curve
	discarded := 0
	for i := range volumes {
		if !titration.InScale(ph[i]) {
			discarded++
			continue
		}
		c.Append(volumes[i], ph[i])
	}
	return c, discarded
}
