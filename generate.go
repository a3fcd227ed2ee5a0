//go:build ignore

// Package ibmesh provides code generation directives for the entire project.
package main

// Generate protobuf code for all proto packages
//go:generate go generate ./proto/meshcoord
