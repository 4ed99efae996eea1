// Package setup prepares the AI File Sorter notebook environment.
//
// It installs the configured packages, registers the Jupyter kernel and
// prints the closing instructions. Step failures are reported and swallowed;
// a setup run always completes.
package setup
