// Package config loads and resolves the harness test configuration.
//
// Configuration lives in flat text files of whitespace-separated
// key/value pairs:
//
//	argument.tor tor                # scalar setting, inline comments allowed
//	integ.test_directory ./test/data
//
//	msg.help
//	|multi-line values follow a bare key
//	|as lines prefixed with a pipe
//
//	target.torrc RUN_COOKIE => PORT, COOKIE
//
// The last form is a category line: it assigns an attribute ("torrc"
// above) of a named target rather than a top-level setting. Category
// values are a single token, free text, or a comma-separated list
// depending on the attribute.
//
// # Load Order
//
// The embedded default catalog loads first, then any user-supplied
// --config file, then command line arguments. Each layer overrides the
// previous one: scalar settings by key, target attributes by
// (target, attribute) pair. There is no deeper merge.
//
// # Resolution
//
// A Table is the raw loaded contents. From it the harness derives:
//
//   - Settings: the typed view of the scalar keys, with schema defaults
//     for anything the files leave unset, merged with CLI overrides
//     (CLI wins).
//   - TargetTable: the declared integration targets in declaration
//     order, resolvable by name. Selecting a target toggles the setting
//     its "config" attribute names, and its "torrc" attribute is the
//     authoritative, order-preserving list of control directives the
//     harness must write into the tor configuration for that run.
//
// All failures (malformed lines, unknown targets, unknown keys in
// strict mode) are terminal at startup: either the full effective
// configuration resolves or the run aborts before any test executes.
package config
