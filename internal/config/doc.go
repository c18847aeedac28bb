// Package config resolves flashctl settings from flags, FLASHCTL_* environment
// variables, and ~/.flashctl/config.yaml, in that order of precedence, and
// freezes them into a Settings value. It also reads and writes single keys in
// the config file for the config command.
package config
