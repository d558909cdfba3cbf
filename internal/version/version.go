// Package version contains information on the current version of the moray
// toolkit. It is split from the main program for easy use.
package version

// Current is the string representing the current version of moray.
const Current = "0.1.0"
