// Package integration holds end-to-end tests of the wired jiggler.
package integration
