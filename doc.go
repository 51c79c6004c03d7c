/*
Package warden is a workflow-mode gate for autonomous coding agents.

A warden project declares a directed (and usually cyclic) graph of named
modes, each with declared outgoing transitions gated by a constraint
shown to the deciding agent, optional per-mode instructions, and optional
per-mode tool permission rules. The engine executes constrained and
forced mode changes with atomic, crash-safe persistence and an
append-only audit history; the policy matcher resolves tool invocations
to allow, deny or pass under a strict deny-dominates-allow rule.

Warden follows a hexagonal layout: the core in pkg/domain, pkg/engine
and pkg/policy is decoupled from storage adapters (file, memory, redis)
behind the pkg/ports.StateStore interface, so hosts can embed it in any
shell: a CLI, an RPC bridge, or agent infrastructure.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/warden"
	)

	func main() {
		w, err := warden.Open("./my-project")
		if err != nil {
			log.Fatal(err)
		}
		ctx := context.Background()

		// Move through a declared edge.
		state, err := w.Engine.Transition(ctx, "test-dev", "bug reproduced, writing a failing test")
		if err != nil {
			log.Fatal(err)
		}
		log.Println("now in", state.CurrentMode)

		// Gate a tool call under the current mode's rules.
		decision, err := w.Decide(ctx, "Bash", map[string]any{"command": "npm test"})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("decision:", decision)
	}
*/
package warden
