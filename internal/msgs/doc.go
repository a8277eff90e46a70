// Package msgs is the message catalogue for diagnostic codes. Text lives in a
// golang.org/x/text catalog keyed by the symbolic code name; diag.Info only
// stores codes and arguments and asks a Provider for text at render time.
package msgs
