// Package epidemic implements the SEIQR compartmental model.
//
// The population is split into five compartments, each held as a fraction
// of the total:
//
//   - S: susceptible
//   - E: exposed (infected, not yet infective)
//   - I: infective
//   - Q: quarantined
//   - R: recovered
//
// [SEIQR] implements [dynamo.System]; [Integrate] advances it with explicit
// Euler over a fixed time grid and [Summarize] extracts the infective peak.
//
//	grid, _ := dynamo.NewTimeGrid(epidemic.DefaultHorizon, epidemic.DefaultDt)
//	traj, _ := epidemic.Integrate(epidemic.InitialState(10000), epidemic.DefaultParams(), grid)
//	peak, _ := epidemic.Summarize(traj)
//	fmt.Println(peak.StatusLine()) // max I = 31% on day 24
package epidemic
