// Package order implements the Order aggregate and its lifecycle state machine.
//
//	pending --claim(agent)--> accepted --advance--> picked_up --advance--> on_the_way --advance--> delivered
//
// Rules enforced here:
//   - items are non-empty and immutable, every quantity is at least 1
//   - the total is supplied by the caller and frozen at creation
//   - an agent is assigned exactly once, by Claim, and never cleared
//   - only the assigned agent advances the status, one step at a time
//
// Every accepted mutation bumps the aggregate version and records an Event carrying a
// snapshot of the order; the unit of work hands those events to the fanout coordinator
// after commit.
package order
