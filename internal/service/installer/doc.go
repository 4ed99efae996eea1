// Package installer installs Python packages one at a time with pip.
//
// Every package is attempted exactly once, in order. A failure is reported to
// the operator and the loop moves on; nothing is retried or rolled back.
package installer
