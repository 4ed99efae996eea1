// Package integration runs the whole setup against a fake Python interpreter.
package integration
