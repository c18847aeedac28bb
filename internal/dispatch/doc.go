// Package dispatch turns operation names into actions for one board profile.
//
// A Registry is built once from the profile and maps each name to a tagged
// Operation: run an external tool, forward to a build-system target, fail as
// unsupported, or do nothing. A Dispatcher pairs the registry with frozen
// config.Settings and refuses to exist when the bound platform does not match
// the profile. Processes are started through the Runner interface so tests
// can observe them without spawning anything.
package dispatch
