package reel

import (
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ID identifies a note or a mixer channel for the lifetime of the song. IDs
// stay stable across moves, deletions and undo round trips, so the editing
// model can refer to entities by ID where indices would go stale. IDs
// serialize as canonical UUID strings in both YAML and JSON.
type ID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func (id ID) String() string { return uuid.UUID(id).String() }

func (id ID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id *ID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// yaml.v3 uses TextMarshaler when encoding but not TextUnmarshaler when
// decoding, so the YAML side is spelled out.
func (id ID) MarshalYAML() (any, error) { return id.String(), nil }

func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*id = ID(u)
	return nil
}
