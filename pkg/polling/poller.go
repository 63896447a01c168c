// Package polling implements the caller-side polling loop the gateway
// deliberately does not: retry cadence, backoff, give-up policy and
// protection against a misbehaving provider. The gateway itself always
// performs exactly one round trip per fetch.
package polling

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// FetchFunc performs one fetch round trip for a task.
type FetchFunc func(ctx context.Context, corr gateway.Correlation, taskID string) (gateway.FetchResult, error)

// Config configures the exponential backoff between fetch attempts.
// MaxElapsedTime is the give-up budget for one task.
type Config struct {
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	MaxElapsedTime      time.Duration
	Multiplier          float64
	RandomizationFactor float64
}

// DefaultConfig returns a polling cadence suited to video synthesis
// jobs, which typically finish within a few minutes.
func DefaultConfig() Config {
	return Config{
		InitialInterval:     2 * time.Second,
		MaxInterval:         30 * time.Second,
		MaxElapsedTime:      15 * time.Minute,
		Multiplier:          1.5,
		RandomizationFactor: 0.5,
	}
}

// Poller polls tasks until they reach a terminal state. A circuit
// breaker per poller stops hammering a provider that fails every
// lookup.
type Poller struct {
	fetch   FetchFunc
	cfg     Config
	breaker *gobreaker.CircuitBreaker
}

// New creates a poller over the given fetch operation.
func New(fetch FetchFunc, cfg Config) *Poller {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "task-fetch",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// Terminal task outcomes are provider answers, not provider
			// failures; only transport-level errors count against the
			// breaker.
			var transport *task.BackendCallError
			return !errors.As(err, &transport)
		},
	})
	return &Poller{fetch: fetch, cfg: cfg, breaker: breaker}
}

// Wait polls one task until it succeeds, fails terminally, or the
// backoff budget runs out. Non-terminal statuses (PENDING, RUNNING,
// UNKNOWN) are retried; terminal failures, empty results and
// configuration errors stop immediately.
func (p *Poller) Wait(ctx context.Context, corr gateway.Correlation, taskID string) (*task.GenerationResult, error) {
	var result *task.GenerationResult

	operation := func() error {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		out, err := p.breaker.Execute(func() (interface{}, error) {
			return p.fetch(ctx, corr, taskID)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(err)
			}
			if permanentOutcome(err) {
				return backoff.Permanent(err)
			}
			// Transient transport failure: retry on the same cadence.
			return err
		}

		res := out.(gateway.FetchResult)
		if res.Done() {
			result = res.Result
			return nil
		}
		return fmt.Errorf("task %s not finished: %s", taskID, res.Status)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.cfg.InitialInterval
	policy.MaxInterval = p.cfg.MaxInterval
	policy.MaxElapsedTime = p.cfg.MaxElapsedTime
	policy.Multiplier = p.cfg.Multiplier
	policy.RandomizationFactor = p.cfg.RandomizationFactor

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return result, nil
}

// WaitAll polls several tasks concurrently and returns results keyed by
// task id. The first permanent failure cancels the remaining waits.
func (p *Poller) WaitAll(ctx context.Context, corr gateway.Correlation, taskIDs []string) (map[string]*task.GenerationResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[string]*task.GenerationResult, len(taskIDs))

	for _, id := range taskIDs {
		id := id
		g.Go(func() error {
			res, err := p.Wait(ctx, corr, id)
			if err != nil {
				return err
			}
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// permanentOutcome reports whether err is an answer about the task
// rather than a transient transport condition.
func permanentOutcome(err error) bool {
	var terminal *task.TerminalTaskFailure
	var empty *task.EmptyResultError
	var config *task.ConfigurationError
	var parse *task.ResponseParseError
	return errors.As(err, &terminal) || errors.As(err, &empty) ||
		errors.As(err, &config) || errors.As(err, &parse)
}
