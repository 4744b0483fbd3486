// Package pivot traces the boundary of a point cloud by rolling a disc of
// fixed diameter around it.
//
// # Overview
//
// The disc always touches one anchor node. A roll rotates it around that
// anchor in a fixed direction (counter-clockwise in standard axes) until it
// touches another neighbor, which becomes the next anchor. Each roll emits a
// directed [Edge]; the sequence of edges is the boundary.
//
// A traversal starts from a [Seed]: an anchor plus an empty disc position
// found by [FindSeed]. The [Roller] then advances one step at a time:
//
//	seed, ok := pivot.FindSeed(anchor, 20)
//	if !ok {
//	    return // anchor cannot start a boundary at this diameter
//	}
//	ring, err := pivot.NewRoller(set, seed).Run()
//
// # Termination
//
// A traversal stops in one of three ways:
//
//   - Closed: the next edge would repeat the first edge of the run, or the
//     next edge and disc position were already passed. The latter happens
//     when the seed anchor shares its position with another node, so the
//     boundary loops back through the twin. The repeated edge is not emitted.
//   - Open: no neighbor of the current anchor admits an empty disc. A roll
//     from an empty disc always reaches some contact, so seeds from
//     [FindSeed] do not end open; hand-built seeds can.
//   - Aborted: the number of emitted edges exceeds 4·edges + 1 of the
//     neighbor graph, more than the number of distinct disc positions. This
//     indicates a tie-break bug and is reported as an INVARIANT_VIOLATION
//     error.
//
// A neighbor the disc already touches counts as a full turn away unless it
// lies ahead on the current circle. A pair exactly one diameter apart has a
// single tangent position and is always reached that way.
//
// # Determinism
//
// Candidates are visited in neighbor enumeration order and a later candidate
// only wins with a strictly smaller rotation, so identical input always yields
// the identical edge sequence.
//
// # Progressive display
//
// [Roller.Edges] yields edges lazily and holds no timers; the caller decides
// the pace. [Roller.Anchor] and [Roller.Center] expose the current disc
// between steps.
package pivot
