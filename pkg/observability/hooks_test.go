package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "json", "classes.json")
	p.OnLoadComplete(ctx, "json", "classes.json", 100, time.Second, nil)
	p.OnConstructStart(ctx, "warshall", 100)
	p.OnConstructComplete(ctx, "warshall", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "matrix")
	c.OnCacheMiss(ctx, "matrix")
	c.OnCacheSet(ctx, "matrix", 1024)
}

type recordingPipelineHooks struct {
	NoopPipelineHooks
	loads int
}

func (r *recordingPipelineHooks) OnLoadStart(context.Context, string, string) {
	r.loads++
}

func TestSetAndGetHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnLoadStart(context.Background(), "json", "classes.json")
	if rec.loads != 1 {
		t.Errorf("loads = %d, want 1", rec.loads)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Error("Pipeline() should never return nil")
	}

	SetCacheHooks(nil)
	if Cache() == nil {
		t.Error("Cache() should never return nil")
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&recordingPipelineHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore noop pipeline hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore noop cache hooks")
	}
}
