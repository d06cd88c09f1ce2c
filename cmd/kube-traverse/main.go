package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/MikailBag/kube-rs/internal/fsm"
)

// State will track the possible states that the UI is capable of showing
const (
	gvr fsm.State = iota
	namespace
	resource
	spec
)

// Events will track different actions which can impact the state.
const (
	transitionScreenForward fsm.Event = iota
	transitionScreenBackward
)

type model struct {
	entity *fsm.Entity[appData]
}

/*
Runtime
*/

func main() {
	logFile, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// Data
	d := newAppData()
	if err := d.fetchKubeData(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reach cluster: %v\n", err)
		os.Exit(1)
	}
	d.convertEntriesToItemList()

	// Initialize FSM
	e := &fsm.Entity[appData]{
		Data: d,
	}

	// Initialize Model
	m := &model{entity: e}

	// Setup initial state
	e.SetInitialState(gvr)
	e.SetMachine([][]fsm.StateFn{
		{m.gvrTransitionScreenForward, m.gvrTransitionScreenBackward},
		{m.namespaceTransitionScreenForward, m.namespaceTransitionScreenBackward},
		{m.resourceTransitionScreenForward, m.resourceTransitionScreenBackward},
		{m.specTransitionScreenForward, m.specTransitionScreenBackward},
	})

	e.Data.program = tea.NewProgram(m, tea.WithAltScreen())

	// Start watching namespaces in goroutine
	globalCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.watchNamespaces(globalCtx)

	if _, err := e.Data.program.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}

	// Cleanup channels
	d.shutdown()
}

// setupLogging sends klog output to a file so it cannot corrupt the
// alt-screen TUI.
func setupLogging() (*os.File, error) {
	logFile, err := os.OpenFile("kube-traverse.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	klog.LogToStderr(false)
	klog.SetOutput(logFile)
	return logFile, nil
}
