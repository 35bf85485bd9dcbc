// Package app wires configuration, engine selection, orchestration and
// presentation into the executable's run modes: the one-shot calculation,
// the quiet pipeline-friendly output, the interactive dashboard and the
// HTTP API.
package app
