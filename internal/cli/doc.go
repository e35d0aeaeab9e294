// Package cli implements the olympia-events command line interface.
package cli
