package ring

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/molyee/scylladb/pkg/network"
	"gopkg.in/yaml.v3"
)

// Snapshot is the serialized ring state representation used for file
// exchange between cluster tooling.
type Snapshot struct {
	Version uint64          `yaml:"version"`
	Entries []SnapshotEntry `yaml:"entries"`
}

// SnapshotEntry is a single token claim in the serialized ring state.
type SnapshotEntry struct {
	Token    int64  `yaml:"token"`
	Endpoint string `yaml:"endpoint"`

	Datacenter string `yaml:"datacenter,omitempty"`
	Rack       string `yaml:"rack,omitempty"`
}

// zstdFrameMagic contains first 4 bytes of any zstd-compressed snapshot
// https://github.com/klauspost/compress/blob/master/zstd/framedec.go#L58 .
var zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// DecodeSnapshot parses serialized ring snapshot. Input compressed with
// zstd is detected by the frame magic and decompressed transparently.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) >= len(zstdFrameMagic) && bytes.Equal(data[:len(zstdFrameMagic)], zstdFrameMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("could not init zstd decoder: %w", err)
		}

		defer dec.Close()

		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("could not decompress ring snapshot: %w", err)
		}
	}

	s := new(Snapshot)

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("could not unmarshal ring snapshot: %w", err)
	}

	return s, nil
}

// ReadSnapshotFile reads and parses the ring snapshot file at path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ring snapshot file: %w", err)
	}

	return DecodeSnapshot(data)
}

// EncodeSnapshot serializes the snapshot, compressing the result with
// zstd if compress is set.
func EncodeSnapshot(s *Snapshot, compress bool) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ring snapshot: %w", err)
	}

	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("could not init zstd encoder: %w", err)
		}

		data = enc.EncodeAll(data, make([]byte, 0, enc.MaxEncodedSize(len(data))))

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("could not close zstd encoder: %w", err)
		}
	}

	return data, nil
}

// Build converts the snapshot into ring state and the topology of its
// members.
func (s *Snapshot) Build() (*State, *Topology, error) {
	entries := make([]Entry, 0, len(s.Entries))
	top := NewTopology()

	for i := range s.Entries {
		var addr network.Address

		if err := addr.FromString(s.Entries[i].Endpoint); err != nil {
			return nil, nil, fmt.Errorf("could not parse endpoint %q: %w", s.Entries[i].Endpoint, err)
		}

		entries = append(entries, Entry{
			Token:    Token(s.Entries[i].Token),
			Endpoint: addr,
		})

		if s.Entries[i].Datacenter != "" || s.Entries[i].Rack != "" {
			top.SetLocation(addr, Location{
				Datacenter: s.Entries[i].Datacenter,
				Rack:       s.Entries[i].Rack,
			})
		}
	}

	st, err := NewState(s.Version, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("could not build ring state: %w", err)
	}

	return st, top, nil
}

// SnapshotFromState serializes ring state back into the exchange form.
// Member locations are taken from top if it is non-nil.
func SnapshotFromState(st *State, top *Topology) *Snapshot {
	s := &Snapshot{
		Version: st.Version(),
		Entries: make([]SnapshotEntry, 0, st.Len()),
	}

	for i := 0; i < st.Len(); i++ {
		e := SnapshotEntry{
			Token:    int64(st.Token(i)),
			Endpoint: st.Owner(i).String(),
		}

		if loc, ok := top.Location(st.Owner(i)); ok {
			e.Datacenter = loc.Datacenter
			e.Rack = loc.Rack
		}

		s.Entries = append(s.Entries, e)
	}

	return s
}
