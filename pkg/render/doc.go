// Package render defines the list rendering contract shared by the terminal,
// HTML and spreadsheet renderers, a registry to select them by name, and the
// ListView that redraws a container from the current cache state.
//
// Rendering is a pure projection: every call rebuilds the whole output from
// the items it is given, in order, with no diffing against a previous frame.
package render
