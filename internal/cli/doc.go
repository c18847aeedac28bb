// Package cli defines the Cobra command tree for flashctl. Each board
// operation becomes a top-level subcommand generated from the built-in
// profile; the remaining files add one support command each (list, doctor,
// profile, config, version). Commands only parse flags and format output;
// the work happens in dispatch, toolcheck and config.
package cli
