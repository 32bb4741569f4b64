// Package session runs the interactive conversation loop.
//
// Each turn appends the user input to the history, asks the completer for an
// answer while an Indicator animates the output line, then stops and joins the
// indicator before the answer or error is printed, so the two never interleave.
package session
