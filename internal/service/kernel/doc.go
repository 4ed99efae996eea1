// Package kernel registers the user-scoped Jupyter kernel through ipykernel
// and notices Jupyter servers that need a page reload to list it.
package kernel
