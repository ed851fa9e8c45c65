package negotiation

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// QueueRole names one of the queue assignments the resolver makes.
type QueueRole int

const (
	RoleGraphics QueueRole = iota
	RoleTransfer
	RoleCompute
	RolePresent
)

func (r QueueRole) String() string {
	switch r {
	case RoleGraphics:
		return "graphics"
	case RoleTransfer:
		return "transfer"
	case RoleCompute:
		return "compute"
	case RolePresent:
		return "present"
	}
	return "unknown"
}

// QueueFamilyIndices holds the family chosen for each role. A nil field means
// no family offers that role and must not be dereferenced.
type QueueFamilyIndices struct {
	Graphics *int
	Transfer *int
	Compute  *int
	Present  *int
}

func (i QueueFamilyIndices) Get(role QueueRole) (int, bool) {
	var idx *int
	switch role {
	case RoleGraphics:
		idx = i.Graphics
	case RoleTransfer:
		idx = i.Transfer
	case RoleCompute:
		idx = i.Compute
	case RolePresent:
		idx = i.Present
	}
	if idx == nil {
		return 0, false
	}
	return *idx, true
}

// IsComplete reports whether the required graphics and present roles are set.
func (i QueueFamilyIndices) IsComplete() bool {
	return i.Graphics != nil && i.Present != nil
}

// Check fails if graphics or present is unresolved. Unresolved transfer or
// compute roles are returned as degraded; their indices stay unset.
func (i QueueFamilyIndices) Check() ([]QueueRole, error) {
	if i.Graphics == nil {
		return nil, Fail(KindIncompleteQueueSupport, "could not find a graphics queue for selected device")
	}
	if i.Present == nil {
		return nil, Fail(KindIncompleteQueueSupport, "could not find a present queue for selected device")
	}

	var degraded []QueueRole
	if i.Transfer == nil {
		degraded = append(degraded, RoleTransfer)
	}
	if i.Compute == nil {
		degraded = append(degraded, RoleCompute)
	}
	return degraded, nil
}

// UniqueFamilies returns every resolved family index once, ascending.
func (i QueueFamilyIndices) UniqueFamilies() []int {
	seen := map[int]struct{}{}
	var families []int
	for _, idx := range []*int{i.Graphics, i.Transfer, i.Compute, i.Present} {
		if idx == nil {
			continue
		}
		if _, ok := seen[*idx]; ok {
			continue
		}
		seen[*idx] = struct{}{}
		families = append(families, *idx)
	}
	sort.Ints(families)
	return families
}

// ResolveQueueFamilies scans families in index order. Every matching family
// overwrites the previous assignment for a role, so the highest matching index
// wins. Present support is asked of the surface per family; a failed query
// counts as unsupported.
func ResolveQueueFamilies(device PhysicalDevice, families []QueueFamilyProperties, surface Surface, log logrus.FieldLogger) QueueFamilyIndices {
	if log == nil {
		log = logrus.StandardLogger()
	}

	var indices QueueFamilyIndices
	for familyIdx, family := range families {
		idx := familyIdx

		if family.QueueFlags&QueueGraphics != 0 {
			indices.Graphics = &idx
		}
		if family.QueueFlags&QueueTransfer != 0 {
			indices.Transfer = &idx
		}
		if family.QueueFlags&QueueCompute != 0 {
			indices.Compute = &idx
		}

		supported, err := surface.SupportsPresent(device, familyIdx)
		if err != nil {
			log.WithError(err).WithField("family", familyIdx).Debug("surface support query failed")
			continue
		}
		if supported {
			indices.Present = &idx
		}
	}

	return indices
}
