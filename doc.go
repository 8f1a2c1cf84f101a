// Package fognav provides grid path planning for agents that only partially
// know where the obstacles are.
//
// It exposes two main entry points:
//
//   - PathSearch.Search: run A* to completion and get a Result.
//   - PathSearch.Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Searches never consult ground truth on their own. The caller supplies a
// BlockedFunc per call, which is how the agent package plans against its
// current belief of the world while the Grid stays immutable.
package fognav
