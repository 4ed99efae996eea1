// Package executor runs external programs on behalf of the setup services.
//
// Runner is the seam the services depend on; Exec is the os/exec
// implementation that streams the child's output to the operator and blocks
// until the child exits.
package executor
