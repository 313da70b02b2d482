// Package terminal hosts the renderer's frames on a real console.
//
// Two backends implement Terminal:
//   - ANSI: raw mode via x/term, alternate screen, frames written verbatim,
//     stdin parsed into key events by a reader goroutine
//   - tcell: frames are decoded from their VT form into tcell cells, for hosts
//     that do not interpret escape sequences natively
//
// Both report key presses only; terminals do not deliver key releases.
package terminal
