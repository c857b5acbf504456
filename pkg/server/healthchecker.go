package server

import (
	"context"
	"log/slog"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// NamedHealthChecker is a dependency that reports under its own name.
type NamedHealthChecker interface {
	HealthChecker
	Name() string
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// CompositeHealthChecker is healthy when every dependency is.
type CompositeHealthChecker struct {
	checkers []NamedHealthChecker
}

func NewCompositeHealthChecker(checkers ...NamedHealthChecker) *CompositeHealthChecker {
	return &CompositeHealthChecker{checkers: checkers}
}

// Add registers more dependencies. It is not safe to call while checks are running.
func (hc *CompositeHealthChecker) Add(checkers ...NamedHealthChecker) {
	hc.checkers = append(hc.checkers, checkers...)
}

func (hc *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	_, ok := hc.Report(ctx)
	return ok
}

// Report returns the state of each dependency and whether all of them are healthy.
func (hc *CompositeHealthChecker) Report(ctx context.Context) (map[string]bool, bool) {
	report := make(map[string]bool, len(hc.checkers))
	ok := true
	for _, c := range hc.checkers {
		healthy := c.Healthy(ctx)
		report[c.Name()] = healthy
		if !healthy {
			slog.Warn("Dependency unhealthy", "name", c.Name())
			ok = false
		}
	}
	return report, ok
}
