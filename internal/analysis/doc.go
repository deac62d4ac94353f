// Package analysis provides parameter studies built on repeated runs.
//
// [Sweep] varies one controller input across a range and records the
// infective peak of each run:
//
//	points, _ := analysis.Sweep(controller.DefaultInputs(), controller.Beta, 0.5, 3, 11, x0, grid)
//	fmt.Print(analysis.SweepToASCII(points, 60, 12))
//
// No objective is optimised; a sweep only tabulates outcomes.
package analysis
