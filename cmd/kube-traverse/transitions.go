package main

import (
	"github.com/MikailBag/kube-rs/api"
	"github.com/MikailBag/kube-rs/internal/fsm"
)

/*
State Transitions
*/

func (m *model) selectedNamespaced() bool {
	m.entity.Data.mu.RLock()
	defer m.entity.Data.mu.RUnlock()
	return m.entity.Data.selected != nil &&
		m.entity.Data.selected.Extras.Scope == api.ScopeNamespaced
}

// GVR Transitions
func (m *model) gvrTransitionScreenForward() (fsm.State, bool) {
	if m.selectedNamespaced() {
		return namespace, true
	}
	return resource, true
}

func (m *model) gvrTransitionScreenBackward() (fsm.State, bool) {
	return gvr, false
}

// Namespace Transitions
func (m *model) namespaceTransitionScreenForward() (fsm.State, bool) {
	return resource, true
}

func (m *model) namespaceTransitionScreenBackward() (fsm.State, bool) {
	return gvr, true
}

// Resource Transitions
func (m *model) resourceTransitionScreenForward() (fsm.State, bool) {
	return spec, true
}

func (m *model) resourceTransitionScreenBackward() (fsm.State, bool) {
	if m.selectedNamespaced() {
		return namespace, true
	}
	return gvr, true
}

// Spec Transitions
func (m *model) specTransitionScreenForward() (fsm.State, bool)  { return spec, false }
func (m *model) specTransitionScreenBackward() (fsm.State, bool) { return resource, true }
