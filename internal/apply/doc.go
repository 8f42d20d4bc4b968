// Package apply runs the recipe against a Rails application directory. The
// run is one ordered list of steps (declare gems, emit config files, ask
// questions, run generators, patch generated files, tidy assets, bootstrap
// git) executed top to bottom on a single goroutine. The first failing step
// aborts the run and nothing already written is rolled back. Patches whose
// anchor text is missing are recorded as warnings instead of failing.
package apply
