// Package astar provides an incremental A* pathfinder over rectangular grids.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// A Stepper never loops on its own. The caller invokes Step, does whatever it
// wants between expansions (render, poll input, log) and drains the dirty node
// buffer to learn which cells changed role since the last pass.
//
// Costs follow the grid Manhattan metric. By default g is the Manhattan
// distance from the start rather than the accumulated path cost, and a
// position that has been expanded is never reopened; both trade strict
// optimality around obstacles for simplicity. WithCostModel(CostAccumulated)
// switches g to the accumulated path cost.
//
// SearchAll runs many independent searches on a bounded worker pool. Each
// search stays single-threaded.
package astar
