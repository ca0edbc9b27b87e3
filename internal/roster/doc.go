// Package roster holds the query, state and render loop of the student roster screen.
//
// Everything here is free of I/O except Controller, which drives a Screen against an
// Endpoint synchronously. Adapters (the terminal UI, the CLI, the HTML renderer) call the
// Screen's Begin*/Finish* pairs from a single goroutine and perform the endpoint call in
// between, wherever they like.
package roster
