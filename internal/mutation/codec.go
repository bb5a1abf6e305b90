package mutation

import (
	"encoding/json"
	"errors"
	"fmt"

	"resume-studio/internal/model"
)

var (
	// ErrUnknownCommand is returned for an op name outside the command set.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidCommand is returned when a command body cannot be decoded.
	ErrInvalidCommand = errors.New("invalid command")
)

// DecodeCommand decodes the wire form {"op": "...", ...fields}. Replace is
// not part of the wire set: whole documents come in through intake, which
// validates them and normalizes their skills.
func DecodeCommand(b []byte) (Command, error) {
	var env struct {
		Op    string          `json:"op"`
		List  string          `json:"list"`
		Entry json.RawMessage `json:"entry"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	var cmd Command
	var err error
	switch env.Op {
	case "setField":
		cmd, err = decodeInto[SetField](b)
	case "addEntry":
		var entry any
		if entry, err = DecodeEntry(env.List, env.Entry); err == nil {
			cmd = AddEntry{List: env.List, Entry: entry}
		}
	case "deleteEntry":
		cmd, err = decodeInto[DeleteEntry](b)
	case "reorder":
		cmd, err = decodeInto[Reorder](b)
	case "toggleBullet":
		cmd, err = decodeInto[ToggleBullet](b)
	case "editBulletText":
		cmd, err = decodeInto[EditBulletText](b)
	case "reorderBullets":
		cmd, err = decodeInto[ReorderBullets](b)
	case "addBullet":
		cmd, err = decodeInto[AddBullet](b)
	case "deleteBullet":
		cmd, err = decodeInto[DeleteBullet](b)
	case "reset":
		cmd = Reset{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Op)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCommand, env.Op, err)
	}
	return cmd, nil
}

func decodeInto[T Command](b []byte) (Command, error) {
	var c T
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// wireBullet lets entries carry bullets as plain strings or as objects
// whose enabled flag may be omitted.
type wireBullet struct {
	model.Bullet
}

func (w *wireBullet) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		w.Bullet = model.Bullet{Text: s, Enabled: true, Origin: model.OriginUser}
		return nil
	}
	var raw struct {
		Text     string       `json:"text"`
		Enabled  *bool        `json:"enabled"`
		Origin   model.Origin `json:"origin"`
		Category string       `json:"category"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	origin := raw.Origin
	if !origin.Valid() {
		origin = model.OriginUser
	}
	enabled := origin != model.OriginAI
	if raw.Enabled != nil {
		enabled = *raw.Enabled
	}
	w.Bullet = model.Bullet{Text: raw.Text, Enabled: enabled, Origin: origin, Category: raw.Category}
	return nil
}

func unwrap(in []wireBullet) []model.Bullet {
	out := make([]model.Bullet, len(in))
	for i, w := range in {
		out[i] = w.Bullet
	}
	return out
}

// DecodeEntry decodes raw into the element type of the list at list.
func DecodeEntry(list string, raw json.RawMessage) (any, error) {
	ref, ok := parseList(list)
	if !ok {
		return nil, fmt.Errorf("unknown list %q", list)
	}
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	switch ref.kind {
	case listExperience, listVolunteer:
		var p struct {
			model.Position
			Bullets []wireBullet `json:"bullets"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		p.Position.Bullets = unwrap(p.Bullets)
		return p.Position, nil
	case listProjects:
		var p struct {
			model.Project
			Bullets []wireBullet `json:"bullets"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		p.Project.Bullets = unwrap(p.Bullets)
		return p.Project, nil
	case listEducation:
		var c model.Credential
		err := json.Unmarshal(raw, &c)
		return c, err
	case listCertifications:
		var c model.Certification
		err := json.Unmarshal(raw, &c)
		return c, err
	default:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
}
