// Package export writes simulation results to files and streams: CSV and
// JSON tables of the trajectory, and PNG or SVG line charts.
package export
