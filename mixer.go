package reel

import "slices"

type (
	// Mixer is the list of channel strips the tracks play through. Channel 0
	// is by convention the master channel; reel does not enforce the
	// convention.
	Mixer struct {
		Channels []Channel
	}

	// Channel is a single mixer strip. Volume is linear gain 0..1, Pan is
	// -1 (hard left) to 1 (hard right). Mute silences the channel; Solo
	// silences every channel that is not soloed. The ID stays stable over
	// the channel's lifetime so the editing model can refer to channels by
	// ID instead of by index.
	Channel struct {
		ID     ID
		Name   string  `yaml:",omitempty"`
		Volume float64 // linear gain, 0..1
		Pan    float64 // -1..1
		Mute   bool    `yaml:",omitempty"`
		Solo   bool    `yaml:",omitempty"`
	}
)

const (
	MinVolume = 0.0
	MaxVolume = 1.0
	MinPan    = -1.0
	MaxPan    = 1.0
)

func (m Mixer) Copy() Mixer {
	m.Channels = slices.Clone(m.Channels)
	return m
}

// FindChannel returns a pointer to the channel with the given ID, or nil if
// no such channel exists. The pointer is only valid until the next mutation
// of the channel slice.
func (m *Mixer) FindChannel(id ID) *Channel {
	for i := range m.Channels {
		if m.Channels[i].ID == id {
			return &m.Channels[i]
		}
	}
	return nil
}

// AnySolo returns true if at least one channel is soloed, in which case all
// non-soloed channels are treated as silent.
func (m *Mixer) AnySolo() bool {
	for _, c := range m.Channels {
		if c.Solo {
			return true
		}
	}
	return false
}

// ClampVolume limits value to the legal volume range.
func ClampVolume(value float64) float64 {
	return max(min(value, MaxVolume), MinVolume)
}

// ClampPan limits value to the legal pan range.
func ClampPan(value float64) float64 {
	return max(min(value, MaxPan), MinPan)
}
