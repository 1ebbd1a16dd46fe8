package cmd

import "errors"

var (
	// ErrNoPods is returned when wait is given neither pod names nor a selector.
	ErrNoPods = errors.New("no pods to wait for, pass pod names or --selector")
	// ErrNamesAndSelector is returned when wait is given both pod names and a selector.
	ErrNamesAndSelector = errors.New("pod names and --selector are mutually exclusive")
	// ErrPodsNotReady is returned when at least one pod did not become ready.
	ErrPodsNotReady = errors.New("pods not ready")
)
