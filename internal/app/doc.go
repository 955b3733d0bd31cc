// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation pipeline, decoupled from the
// command-line entrypoint.
package app
