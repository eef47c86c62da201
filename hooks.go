package bloom

import (
	"sync"
)

type Stage int

const (
	Default Stage = iota
	Sizing
	LoadWords
	Persist
	Restore
)

func (s Stage) String() string {
	return [...]string{
		"Default",
		"Sizing",
		"LoadWords",
		"Persist",
		"Restore",
	}[s]
}

// Hook observes a single stage of a filter lifecycle.
type Hook interface {
	GetStage() Stage
	Before(args ...interface{})
	After(optionalErr error, args ...interface{})
}

type HookImpl struct {
	Stage          Stage
	BeforeFn       func(args ...interface{})
	AfterSuccessFn func(args ...interface{})
	AfterFailFn    func(err error, args ...interface{})
}

func (h *HookImpl) GetStage() Stage {
	return h.Stage
}

func (h *HookImpl) Before(args ...interface{}) {
	if h.BeforeFn != nil {
		h.BeforeFn(args...)
	}
}

func (h *HookImpl) After(optionalErr error, args ...interface{}) {
	if optionalErr != nil {
		if h.AfterFailFn != nil {
			h.AfterFailFn(optionalErr, args...)
		}
		return
	}
	if h.AfterSuccessFn != nil {
		h.AfterSuccessFn(args...)
	}
}

// Hooks dispatches stage notifications. A nil *Hooks is valid and does nothing.
type Hooks struct {
	hooks map[Stage]Hook
	mu    sync.RWMutex
}

func NewHooks(hooks ...Hook) *Hooks {
	hs := &Hooks{hooks: make(map[Stage]Hook, len(hooks))}
	for _, h := range hooks {
		hs.hooks[h.GetStage()] = h
	}
	return hs
}

// Set replaces the hook registered for h's stage.
func (hs *Hooks) Set(h Hook) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.hooks[h.GetStage()] = h
}

func (hs *Hooks) Before(stage Stage, args ...interface{}) {
	hs.getHook(stage).Before(args...)
}

func (hs *Hooks) After(stage Stage, optionalErr error, args ...interface{}) {
	hs.getHook(stage).After(optionalErr, args...)
}

func (hs *Hooks) getHook(stage Stage) Hook {
	if hs == nil {
		return noOpHookInst
	}
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	if h, exists := hs.hooks[stage]; exists {
		return h
	}
	return noOpHookInst
}

var noOpHookInst = noOpHook{}

type noOpHook struct {
}

func (n noOpHook) GetStage() Stage {
	return Default
}

func (n noOpHook) Before(args ...interface{}) {}

func (n noOpHook) After(optionalErr error, args ...interface{}) {}

var _ Hook = &HookImpl{}
var _ Hook = noOpHook{}
