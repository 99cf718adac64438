// Package field implements the energy-coupled oscillator field: a small set
// of horizontal lines whose energy follows pointer proximity through a damped
// spring, bleeds into neighboring lines, and drives each line's amplitude and
// oscillation speed.
//
// Step and Sample are pure. Callers own a State and replace it with the value
// Step returns once per frame.
package field
