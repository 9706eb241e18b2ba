// Package omen holds module-wide metadata shared by the library and the CLI.
package omen

// Version is the omen release version.
const Version = "v0.1.0"
