// Package engine is the hand-off point between the builders and whatever
// performs module placement and simulation. A Deployment bundles one run's
// physical topology, application graph and finalized mapping; an Engine
// accepts it. The builders never see an Engine and an Engine never sees a
// builder.
//
// DryRun is the only Engine shipped here. It checks the bundle, logs a
// summary and keeps the last deployment for inspection.
package engine
