// SPDX-License-Identifier: EPL-2.0

// Package layer describes the four sample slots of a kick.
//
// A layer is inert configuration: Params says how its notes are pitched,
// shaped and mixed, and Sample is the decoded audio it plays. Both are
// published through a Slot with atomic pointer swaps, so the control side
// can replace them while the render side keeps reading the values it
// picked up at the start of a block.
package layer
