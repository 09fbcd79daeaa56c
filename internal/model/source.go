// Package model defines the data structures shared by the fuzzing harness.
package model

// Path represents a file system path.
type Path string

