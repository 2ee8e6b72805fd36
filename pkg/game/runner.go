package game

import (
	"context"
	"fmt"
	"time"
)

// Runner drives an engine without a window.
type Runner struct {
	Engine *Engine
	// TPS paces the loop in ticks per second. Zero or less runs as fast as possible.
	TPS int
	// MaxTicks stops the run after that many race ticks. Zero runs until ctx is done.
	MaxTicks int64
	// OnTick is called after every tick; returning false stops the run.
	OnTick func(e *Engine) bool
}

// NewRunner returns a runner paced at the configured frame rate.
func NewRunner(e *Engine) *Runner {
	return &Runner{
		Engine: e,
		TPS:    e.Config().FPS,
	}
}

// Run starts the race and ticks until MaxTicks, OnTick asks to stop, a tick fails or
// ctx is done. Cancellation returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	e := r.Engine
	e.Start()
	e.log.Printf("Runner started (tps %d, max ticks %d)", r.TPS, r.MaxTicks)

	var tick <-chan time.Time
	if r.TPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.TPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := e.Tick(); err != nil {
			return err
		}
		// a resize drops back to the menu
		if e.Mode() == Menu {
			e.Start()
		}
		if r.OnTick != nil && !r.OnTick(e) {
			return nil
		}
		if r.MaxTicks > 0 && e.State().Ticks >= r.MaxTicks {
			e.log.Printf("Runner finished after %d ticks", e.State().Ticks)
			return nil
		}
	}
}

// Capture calls save with the current frame and then with every nth race frame until
// frames calls have been made. The first frame is whatever the engine shows before the
// race starts.
func Capture(ctx context.Context, r *Runner, frames, every int, save func(e *Engine) error) error {
	if frames <= 0 || every <= 0 {
		return fmt.Errorf("frames and every must be positive, got %d and %d", frames, every)
	}
	if err := save(r.Engine); err != nil {
		return err
	}
	written := 1
	if written >= frames {
		return nil
	}

	var saveErr error
	onTick := r.OnTick
	r.OnTick = func(e *Engine) bool {
		if onTick != nil && !onTick(e) {
			return false
		}
		if e.State().Ticks%int64(every) != 0 {
			return true
		}
		if saveErr = save(e); saveErr != nil {
			return false
		}
		written++
		return written < frames
	}
	defer func() { r.OnTick = onTick }()

	if err := r.Run(ctx); err != nil {
		return err
	}
	return saveErr
}
