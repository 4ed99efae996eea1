// Package interpreter locates the Python executable whose environment the
// setup installs into.
package interpreter
