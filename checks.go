package dropguard

// checksOn gates the one-shot misuse assertions. Off by default.
var checksOn bool

// SetChecks toggles misuse assertions, meant for tests and debug builds.
// With checks on, Extract, Value, and Clone panic when the guard is already
// spent instead of returning residual or zero values. Drop stays silently
// idempotent in every mode.
//
// The toggle is a plain package variable. Flip it from TestMain or before
// spawning goroutines, not concurrently with guard use.
func SetChecks(enabled bool) {
	checksOn = enabled
}
