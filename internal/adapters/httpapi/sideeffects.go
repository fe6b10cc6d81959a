package httpapi

import (
	"context"
	"sync"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

// sideEffectJSON is one entry of the response extensions.sideEffects list.
type sideEffectJSON struct {
	Kind  string `json:"kind"`
	Key   string `json:"key"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// sideEffectRecorder collects side effects for one request. Query fields
// resolve concurrently, so access is guarded.
type sideEffectRecorder struct {
	mu      sync.Mutex
	effects []sideEffectJSON
}

type recorderKey struct{}

func withSideEffectRecorder(ctx context.Context) (context.Context, *sideEffectRecorder) {
	rec := &sideEffectRecorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

func recordSideEffects(ctx context.Context, effects []domain.SideEffect) {
	rec, ok := ctx.Value(recorderKey{}).(*sideEffectRecorder)
	if !ok || len(effects) == 0 {
		return
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, e := range effects {
		out := sideEffectJSON{Kind: string(e.Kind), Key: e.Key, OK: e.OK()}
		if e.Err != nil {
			out.Error = e.Err.Error()
		}
		rec.effects = append(rec.effects, out)
	}
}

func (r *sideEffectRecorder) snapshot() []sideEffectJSON {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.effects) == 0 {
		return nil
	}
	out := make([]sideEffectJSON, len(r.effects))
	copy(out, r.effects)
	return out
}
