// Package geo wraps the platform's single-shot positioning capability:
// one best-effort fresh fix with a bounded timeout, used by the
// "current location" capture flow.
package geo

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tripmark/internal/models"
)

// Failure causes, each with its own user-facing message.
var (
	ErrPermissionDenied    = errors.New("geolocation permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrFixTimeout          = errors.New("position fix timed out")
)

const DefaultFixTimeout = 10 * time.Second

// Options mirror the platform position-request options. MaximumAge
// stays zero: a cached fix is never acceptable for a capture.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Position is one fix from the source.
type Position struct {
	Coordinate     models.Coordinate
	AccuracyMeters float64
}

// PositionSource is the underlying location provider.
type PositionSource interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// Locator requests single fixes with high accuracy and a bounded
// timeout. Concurrent requests may race; completions are keyed on
// request identity so only the newest request's result is delivered.
type Locator struct {
	src     PositionSource
	log     *zap.Logger
	timeout time.Duration

	seq    atomic.Uint64
	newest atomic.Uint64
}

func NewLocator(src PositionSource, log *zap.Logger) *Locator {
	return &Locator{src: src, log: log, timeout: DefaultFixTimeout}
}

// WithTimeout overrides the fix timeout; values <= 0 keep the default.
func (l *Locator) WithTimeout(d time.Duration) *Locator {
	if d > 0 {
		l.timeout = d
	}
	return l
}

// Locate blocks for one fresh high-accuracy fix.
func (l *Locator) Locate(ctx context.Context) (models.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	pos, err := l.src.CurrentPosition(ctx, Options{
		HighAccuracy: true,
		Timeout:      l.timeout,
		MaximumAge:   0,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Coordinate{}, ErrFixTimeout
		}
		return models.Coordinate{}, err
	}
	return pos.Coordinate, nil
}

// LocateAsync requests a fix in the background and calls onFix with the
// coordinate, typically to open the record-capture flow pre-filled with
// the current location. If a newer request is started before this one
// completes, the stale completion is dropped: callbacks never arrive
// out of order with respect to the newest request.
func (l *Locator) LocateAsync(ctx context.Context, onFix func(models.Coordinate), onErr func(error)) {
	id := l.seq.Add(1)
	l.newest.Store(id)

	go func() {
		coord, err := l.Locate(ctx)
		if l.newest.Load() != id {
			l.log.Debug("dropping stale position fix", zap.Uint64("requestId", id))
			return
		}
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		if onFix != nil {
			onFix(coord)
		}
	}()
}

// UserMessage translates a locator failure into the message shown to
// the user; each cause gets its own wording.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location permission was denied. Allow location access and try again."
	case errors.Is(err, ErrPositionUnavailable):
		return "Your position could not be determined. Try again outdoors or check your connection."
	case errors.Is(err, ErrFixTimeout):
		return "Finding your location took too long. Please try again."
	default:
		return "Could not get your current location."
	}
}
