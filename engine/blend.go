// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math/bits"

	"github.com/ik5/hardkick/layer"
)

// BlendGroups tracks which voice slots belong to which blend group, one
// bitset per group. Group 0 means ungrouped and is never tracked.
type BlendGroups struct {
	members [layer.MaxBlendGroups]uint64
}

func tracked(group int) bool {
	return group > 0 && group < layer.MaxBlendGroups
}

// Join adds voice slot to group.
func (b *BlendGroups) Join(group, slot int) {
	if tracked(group) {
		b.members[group] |= 1 << uint(slot)
	}
}

// Leave removes voice slot from group.
func (b *BlendGroups) Leave(group, slot int) {
	if tracked(group) {
		b.members[group] &^= 1 << uint(slot)
	}
}

// Members returns the slot bitset of group.
func (b *BlendGroups) Members(group int) uint64 {
	if !tracked(group) {
		return 0
	}
	return b.members[group]
}

// Count is the number of voices in group.
func (b *BlendGroups) Count(group int) int {
	return bits.OnesCount64(b.Members(group))
}

// Contains reports whether slot is a member of group.
func (b *BlendGroups) Contains(group, slot int) bool {
	return b.Members(group)&(1<<uint(slot)) != 0
}

func (b *BlendGroups) Reset() {
	b.members = [layer.MaxBlendGroups]uint64{}
}
