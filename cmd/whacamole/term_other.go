//go:build !linux

package main

// Raw-mode front panel is only wired up on Linux; elsewhere the wire
// still works line-buffered.
func enterRawTerm() bool { return false }

func exitRawTerm() {}
