// Package file loads docmirror configuration from a TOML file.
//
// Every field has a default, so a missing config file yields a fully
// usable configuration; a present file overrides only the fields it
// sets.
package file
