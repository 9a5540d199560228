// Package behaviour owns behaviour selection for the planner.
//
// A Strategy receives the per-cycle agent snapshot through SetAgentSet
// and picks a target reference line in Execute. Concrete strategies
// (LaneKeep, CostBased) are independent implementations selected by name
// through a Registry; callers never depend on a concrete type.
//
// Per cycle the caller invokes SetAgentSet then Execute. A strategy
// instance is single-owner and must not be shared across goroutines
// without external locking.
//
// Dependency rule: behaviour may depend on trajectory and config, never
// on transport code.
package behaviour
