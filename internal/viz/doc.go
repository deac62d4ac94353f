// Package viz renders epidemic runs in the terminal.
//
//   - [PlotCompartments]: asciigraph chart of all five compartments
//   - [TextDisplay]: a controller display that prints the status line
//   - [Model]: Bubble Tea slider panel driving a controller
//
// # Key Bindings
//
//	Up/K, Down/J  - Select slider
//	Left/H        - Decrease by one step
//	Right/L       - Increase by one step
//	R             - Reset all sliders
//	T             - Cycle color themes
//	?             - Show help overlay
//	Q             - Quit
package viz
