package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModes = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	if m, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return m, nil
	}
	return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: auto shows the progress view only when stdout is a terminal
// and --quiet is off.
func shouldUseTUI(mode uiMode, quiet bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return !quiet && isTerminal(os.Stdout)
}
