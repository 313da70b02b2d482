//go:build !unix

package terminal

// resetTerminalMode is a no-op; console mode is restored by Fini only
func resetTerminalMode() {}
