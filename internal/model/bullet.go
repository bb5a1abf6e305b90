package model

import "github.com/google/uuid"

// BulletID identifies a bullet independently of its position in the list.
type BulletID string

type Origin string

const (
	OriginOriginal Origin = "original"
	OriginAI       Origin = "ai"
	OriginUser     Origin = "user"
)

// Valid reports whether o is one of the known origins.
func (o Origin) Valid() bool {
	switch o {
	case OriginOriginal, OriginAI, OriginUser:
		return true
	}
	return false
}

type Bullet struct {
	ID       BulletID `json:"id"`
	Text     string   `json:"text"`
	Enabled  bool     `json:"enabled"`
	Origin   Origin   `json:"origin"`
	Category string   `json:"category,omitempty"`
}

// NewBulletID is swapped out by tests that need predictable ids.
var NewBulletID = func() BulletID {
	return BulletID(uuid.NewString())
}

// NewBullet builds a bullet with a fresh id. Generated (ai) bullets start
// disabled so they are reviewed before they reach any output; everything
// else starts enabled.
func NewBullet(text string, origin Origin, category string) Bullet {
	return Bullet{
		ID:       NewBulletID(),
		Text:     text,
		Enabled:  origin != OriginAI,
		Origin:   origin,
		Category: category,
	}
}

// FindBullet returns the index of the bullet with the given id, or -1.
func FindBullet(bullets []Bullet, id BulletID) int {
	for i, b := range bullets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Reissue gives every bullet a fresh id. Used whenever bullets enter the
// document from outside so ids are never shared between entries.
func Reissue(bullets []Bullet) []Bullet {
	out := make([]Bullet, len(bullets))
	for i, b := range bullets {
		b.ID = NewBulletID()
		if !b.Origin.Valid() {
			b.Origin = OriginUser
		}
		out[i] = b
	}
	return out
}
