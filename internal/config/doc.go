// Package config defines the setup settings: the interpreter to install into,
// the ordered package list, the kernel name and the notebook shown in the
// closing instructions.
//
// Settings come from an optional YAML file overlaid by AIFILES_* environment
// variables. A missing file is not an error; defaults apply.
package config
