// Package main provides the entry point for the crystalview CLI.
//
// crystalview fetches a crystal structure from the Materials Project by
// identifier, prints its lattice properties and draws a 3D view of the
// atomic sites with the lattice vectors and a 2D projection of the
// fractional coordinates.
//
// Usage:
//
//	crystalview                    # interactive terminal viewer
//	crystalview view mp-66
//	crystalview show mp-66 mp-149
//	crystalview serve --listen 127.0.0.1:8501
//
// See --help for all available options.
package main

// main is the entry point for crystalview.
func main() {
	Execute()
}
