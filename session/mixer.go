package session

import (
	"fmt"

	"github.com/reeltracker/reel"
	"github.com/reeltracker/reel/edit"
)

// Mixer returns the mixer view of the model, containing the channel
// parameters and the channel add/delete actions. Every mutation goes
// through the mixer undo history as a command carrying explicit old/new
// values.
func (m *Model) Mixer() *MixerModel { return (*MixerModel)(m) }

type MixerModel Model

// ChannelCount returns the number of mixer channels.
func (mm *MixerModel) ChannelCount() int { return len(mm.d.Song.Mixer.Channels) }

// Channel returns the channel at the given index, by value.
func (mm *MixerModel) Channel(index int) reel.Channel { return mm.d.Song.Mixer.Channels[index] }

// channel properties; the edit commands reach the channel by ID, not by
// index, so they keep working after channels are added or deleted and then
// the deletion is undone.

type volumeProp struct {
	m  *Model
	id reel.ID
}

func (p volumeProp) Value() float64 {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		return ch.Volume
	}
	return 0
}

func (p volumeProp) SetValue(value float64) {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		ch.Volume = value
	}
}

type panProp struct {
	m  *Model
	id reel.ID
}

func (p panProp) Value() float64 {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		return ch.Pan
	}
	return 0
}

func (p panProp) SetValue(value float64) {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		ch.Pan = value
	}
}

type muteProp struct {
	m  *Model
	id reel.ID
}

func (p muteProp) Value() bool {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		return ch.Mute
	}
	return false
}

func (p muteProp) SetValue(value bool) {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		ch.Mute = value
	}
}

type soloProp struct {
	m  *Model
	id reel.ID
}

func (p soloProp) Value() bool {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		return ch.Solo
	}
	return false
}

func (p soloProp) SetValue(value bool) {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		ch.Solo = value
	}
}

type nameProp struct {
	m  *Model
	id reel.ID
}

func (p nameProp) Value() string {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		return ch.Name
	}
	return ""
}

func (p nameProp) SetValue(value string) {
	if ch := p.m.d.Song.Mixer.FindChannel(p.id); ch != nil {
		ch.Name = value
	}
}

// Volume returns a Float representing the volume fader of the channel at
// the given index. Consecutive sets coalesce into one undo step, so
// dragging a fader is a single undo.
func (mm *MixerModel) Volume(index int) Float { return MakeFloat(volumeValue{(*Model)(mm), index}) }

type volumeValue struct {
	m     *Model
	index int
}

func (v volumeValue) Value() float64 { return v.m.d.Song.Mixer.Channels[v.index].Volume }
func (v volumeValue) Range() RangeF  { return RangeF{reel.MinVolume, reel.MaxVolume} }
func (v volumeValue) SetValue(value float64) bool {
	ch := v.m.d.Song.Mixer.Channels[v.index]
	cmd := edit.NewSet(fmt.Sprintf("Set Volume (%s)", ch.Name), volumeProp{v.m, ch.ID}, ch.Volume, value)
	return v.m.mixer.DoCoalesced("Mixer.Volume", cmd) == nil
}

// Pan returns a Float representing the pan knob of the channel at the
// given index.
func (mm *MixerModel) Pan(index int) Float { return MakeFloat(panValue{(*Model)(mm), index}) }

type panValue struct {
	m     *Model
	index int
}

func (v panValue) Value() float64 { return v.m.d.Song.Mixer.Channels[v.index].Pan }
func (v panValue) Range() RangeF  { return RangeF{reel.MinPan, reel.MaxPan} }
func (v panValue) SetValue(value float64) bool {
	ch := v.m.d.Song.Mixer.Channels[v.index]
	cmd := edit.NewSet(fmt.Sprintf("Set Pan (%s)", ch.Name), panProp{v.m, ch.ID}, ch.Pan, value)
	return v.m.mixer.DoCoalesced("Mixer.Pan", cmd) == nil
}

// Mute returns a Bool representing the mute switch of the channel at the
// given index.
func (mm *MixerModel) Mute(index int) Bool { return MakeBool(muteValue{(*Model)(mm), index}) }

type muteValue struct {
	m     *Model
	index int
}

func (v muteValue) Value() bool { return v.m.d.Song.Mixer.Channels[v.index].Mute }
func (v muteValue) SetValue(value bool) bool {
	ch := v.m.d.Song.Mixer.Channels[v.index]
	desc := fmt.Sprintf("Mute (%s)", ch.Name)
	if !value {
		desc = fmt.Sprintf("Unmute (%s)", ch.Name)
	}
	cmd := edit.NewSet(desc, muteProp{v.m, ch.ID}, ch.Mute, value)
	return v.m.mixer.Do(cmd) == nil
}

// Solo returns a Bool representing the solo switch of the channel at the
// given index.
func (mm *MixerModel) Solo(index int) Bool { return MakeBool(soloValue{(*Model)(mm), index}) }

type soloValue struct {
	m     *Model
	index int
}

func (v soloValue) Value() bool { return v.m.d.Song.Mixer.Channels[v.index].Solo }
func (v soloValue) SetValue(value bool) bool {
	ch := v.m.d.Song.Mixer.Channels[v.index]
	cmd := edit.NewSet(fmt.Sprintf("Solo (%s)", ch.Name), soloProp{v.m, ch.ID}, ch.Solo, value)
	return v.m.mixer.Do(cmd) == nil
}

// Name returns a String representing the name of the channel at the given
// index. Consecutive edits coalesce, so typing a name is one undo step.
func (mm *MixerModel) Name(index int) String { return MakeString(nameValue{(*Model)(mm), index}) }

type nameValue struct {
	m     *Model
	index int
}

func (v nameValue) Value() string { return v.m.d.Song.Mixer.Channels[v.index].Name }
func (v nameValue) SetValue(value string) bool {
	ch := v.m.d.Song.Mixer.Channels[v.index]
	cmd := edit.NewSet("Rename Channel", nameProp{v.m, ch.ID}, ch.Name, value)
	return v.m.mixer.DoCoalesced("Mixer.Name", cmd) == nil
}

// AddChannel appends a new channel with the given name and default fader
// settings, as one undo step. It returns the index of the new channel.
func (mm *MixerModel) AddChannel(name string) (int, error) {
	m := (*Model)(mm)
	ch := reel.Channel{ID: reel.NewID(), Name: name, Volume: 0.8}
	index := len(m.d.Song.Mixer.Channels)
	cmd := edit.NewInsert("Add Channel", edit.NewSlice(&m.d.Song.Mixer.Channels), index, ch)
	if err := m.mixer.Do(cmd); err != nil {
		return 0, err
	}
	return index, nil
}

type trackChannelProp struct {
	m     *Model
	track int
}

func (p trackChannelProp) Value() int {
	return p.m.d.Song.Score.Tracks[p.track].Channel
}

func (p trackChannelProp) SetValue(value int) {
	p.m.d.Song.Score.Tracks[p.track].Channel = value
}

// DeleteChannel removes the channel at the given index as one undo step.
// Tracks routed to channels after the deleted one are rerouted within the
// same step, since the routing is index-based. The last channel cannot be
// deleted, and neither can a channel some track is routed to.
func (mm *MixerModel) DeleteChannel(index int) error {
	m := (*Model)(mm)
	if len(m.d.Song.Mixer.Channels) <= 1 {
		return fmt.Errorf("cannot delete the last channel")
	}
	for i, t := range m.d.Song.Score.Tracks {
		if t.Channel == index {
			return fmt.Errorf("channel %d is in use by track %d", index, i)
		}
	}
	b := m.mixer.BeginBatch("Delete Channel")
	defer b.End()
	if err := b.Do(edit.NewRemove("Delete Channel", edit.NewSlice(&m.d.Song.Mixer.Channels), index)); err != nil {
		return err
	}
	for i, t := range m.d.Song.Score.Tracks {
		if t.Channel > index {
			if err := b.Do(edit.NewSet("Reroute Track", trackChannelProp{m, i}, t.Channel, t.Channel-1)); err != nil {
				return err
			}
		}
	}
	return nil
}
