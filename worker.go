package astar

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Job is one independent search handed to SearchAll.
type Job struct {
	ID      string
	Terrain Terrain
	Start   Position
	End     Position
}

// JobResult is the worker's report for a Job. Err is ErrNoPath when the
// frontier ran dry.
type JobResult struct {
	ID     string
	Result Result
	Err    error
}

// SearchAll runs every job on a pool of NumberOfWorkers goroutines. Each
// search is driven by its own Stepper; workers only share the results slice,
// indexed by job. Search failures are reported per job. The returned error is
// set only when ctx is cancelled.
func SearchAll(contextObject context.Context, jobs []Job, options ...Option) ([]JobResult, error) {
	searchOptions := buildOptions(options)
	results := make([]JobResult, len(jobs))

	group, groupCtx := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)

	for i, job := range jobs {
		i, job := i, job
		group.Go(func() error {
			result, err := runJob(groupCtx, job, options)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			results[i] = JobResult{ID: job.ID, Result: result, Err: err}
			if searchOptions.OnJobDone != nil {
				searchOptions.OnJobDone(results[i])
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, fmt.Errorf("search all: %w", err)
	}
	return results, nil
}

func runJob(ctx context.Context, job Job, options []Option) (Result, error) {
	stepper, err := NewStepper(job.Terrain, job.Start, job.End, options...)
	if err != nil {
		return Result{}, err
	}
	maxSteps := stepper.options.MaxSteps
	for !stepper.IsDone() {
		select {
		case <-ctx.Done():
			return stepper.Result(), ctx.Err()
		default:
		}
		if maxSteps > 0 && stepper.stepCount >= maxSteps {
			return stepper.Result(), fmt.Errorf("%w after %d steps", ErrStepLimit, maxSteps)
		}
		if _, err := stepper.Step(); err != nil {
			return stepper.Result(), err
		}
	}
	result := stepper.Result()
	if !result.Found {
		return result, ErrNoPath
	}
	return result, nil
}
