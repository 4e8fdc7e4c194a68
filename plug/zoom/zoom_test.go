package zoom

import (
	"context"
	"testing"
)

func initController(t *testing.T, conf map[string]any) *Controller {
	t.Helper()
	c := &Controller{}
	if err := c.Initialize(context.Background(), conf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestInitializeClampsInitialFactor(t *testing.T) {
	c := initController(t, map[string]any{
		"min": 0.5, "max": 2.0, "step": 0.5, "initial": 10.0,
	})
	if got := c.Factor(); got != 2.0 {
		t.Errorf("expected initial factor clamped to 2.0, got %v", got)
	}
}

func TestZoomStepsStayInRange(t *testing.T) {
	c := initController(t, map[string]any{
		"min": 0.5, "max": 1.5, "step": 0.5, "initial": 1.0,
	})

	if got := c.ZoomIn(); got != 1.5 {
		t.Errorf("expected 1.5 after zoom in, got %v", got)
	}
	if got := c.ZoomIn(); got != 1.5 {
		t.Errorf("zoom in at max must stay clamped, got %v", got)
	}
	c.SetFactor(0.6)
	if got := c.ZoomOut(); got != 0.5 {
		t.Errorf("zoom out must clamp to min, got %v", got)
	}
}

func TestInitializeRejectsInvalidRange(t *testing.T) {
	c := &Controller{}
	err := c.Initialize(context.Background(), map[string]any{"min": 2.0, "max": 1.0})
	if err == nil {
		t.Error("expected error for inverted range")
	}
	err = c.Initialize(context.Background(), map[string]any{"min": -1.0, "max": 1.0})
	if err == nil {
		t.Error("expected error for non-positive min")
	}
}
