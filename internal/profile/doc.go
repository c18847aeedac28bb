// Package profile loads board profiles: the YAML documents that bind a
// platform identifier to its JTAG settings, tool requirements and operation
// table. One profile is embedded in the binary; others can be parsed and
// checked against the embedded JSON schema.
package profile
