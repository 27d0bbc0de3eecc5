package ring

import (
	"sort"

	"github.com/molyee/scylladb/pkg/network"
	"github.com/scylladb/go-set/strset"
)

// Location groups the datacenter and rack labels assigned to a cluster
// member.
type Location struct {
	Datacenter string
	Rack       string
}

// Topology maps cluster member endpoints to their physical locations.
//
// Nil pointer is usable and describes a cluster with no recorded
// locations.
type Topology struct {
	mLocations map[string]Location
}

// NewTopology creates, initializes and returns empty Topology instance.
func NewTopology() *Topology {
	return &Topology{
		mLocations: make(map[string]Location),
	}
}

// SetLocation records the location of the member endpoint, overwriting
// the previous record if there is one.
func (t *Topology) SetLocation(addr network.Address, loc Location) {
	t.mLocations[addr.String()] = loc
}

// Location returns the recorded location of the member endpoint and a
// flag showing if the record exists.
func (t *Topology) Location(addr network.Address) (Location, bool) {
	if t == nil {
		return Location{}, false
	}

	loc, ok := t.mLocations[addr.String()]

	return loc, ok
}

// Datacenters returns the sorted list of distinct datacenter names
// present in the recorded locations.
func (t *Topology) Datacenters() []string {
	if t == nil {
		return nil
	}

	v := strset.NewWithSize(len(t.mLocations))
	for _, loc := range t.mLocations {
		v.Add(loc.Datacenter)
	}

	dcs := v.List()
	sort.Strings(dcs)

	return dcs
}
