// Package mutation applies edit commands to a resume document.
//
// Apply is a pure transition: it never edits its input and returns either a
// new document or, when the command cannot be addressed (stale index,
// unknown bullet id, bad path), the input itself. Addressing failures are
// routine when the UI races a delete against an edit, so they are not
// errors.
package mutation

import "resume-studio/internal/model"

// Command is the closed set of edits understood by Apply.
type Command interface {
	// Op is the wire name of the command.
	Op() string
	sealed()
}

// Section names an entry list that carries bullets.
type Section string

const (
	SectionExperience Section = "experience"
	SectionProjects   Section = "projects"
	SectionVolunteer  Section = "volunteer"
)

// EntryPath addresses one bullet-carrying entry. Index is ignored for the
// volunteer section.
type EntryPath struct {
	Section Section `json:"section"`
	Index   int     `json:"index"`
}

// SetField sets one text field addressed by a dotted path such as
// "identity.name" or "experience.0.organization".
type SetField struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// AddEntry appends Entry to the list at List. Entry must have the list's
// element type: model.Position, model.Project, model.Credential,
// model.Certification or string for label lists.
type AddEntry struct {
	List  string `json:"list"`
	Entry any    `json:"-"`
}

type DeleteEntry struct {
	List  string `json:"list"`
	Index int    `json:"index"`
}

type Reorder struct {
	List string `json:"list"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type ToggleBullet struct {
	Entry   EntryPath      `json:"entry"`
	Bullet  model.BulletID `json:"bullet"`
	Enabled bool           `json:"enabled"`
}

// EditBulletText replaces a bullet's text. Blank text removes the bullet.
type EditBulletText struct {
	Entry  EntryPath      `json:"entry"`
	Bullet model.BulletID `json:"bullet"`
	Text   string         `json:"text"`
}

type ReorderBullets struct {
	Entry EntryPath `json:"entry"`
	From  int       `json:"from"`
	To    int       `json:"to"`
}

// AddBullet appends a user-written bullet to an entry.
type AddBullet struct {
	Entry EntryPath `json:"entry"`
	Text  string    `json:"text"`
}

// DeleteBullet is the explicit removal of a bullet, disabled or not.
type DeleteBullet struct {
	Entry  EntryPath      `json:"entry"`
	Bullet model.BulletID `json:"bullet"`
}

// Replace swaps in a whole document, as after a parser import.
type Replace struct {
	Document model.Document `json:"document"`
}

// Reset discards everything ("start over").
type Reset struct{}

func (SetField) Op() string       { return "setField" }
func (AddEntry) Op() string       { return "addEntry" }
func (DeleteEntry) Op() string    { return "deleteEntry" }
func (Reorder) Op() string        { return "reorder" }
func (ToggleBullet) Op() string   { return "toggleBullet" }
func (EditBulletText) Op() string { return "editBulletText" }
func (ReorderBullets) Op() string { return "reorderBullets" }
func (AddBullet) Op() string      { return "addBullet" }
func (DeleteBullet) Op() string   { return "deleteBullet" }
func (Replace) Op() string        { return "replace" }
func (Reset) Op() string          { return "reset" }

func (SetField) sealed()       {}
func (AddEntry) sealed()       {}
func (DeleteEntry) sealed()    {}
func (Reorder) sealed()        {}
func (ToggleBullet) sealed()   {}
func (EditBulletText) sealed() {}
func (ReorderBullets) sealed() {}
func (AddBullet) sealed()      {}
func (DeleteBullet) sealed()   {}
func (Replace) sealed()        {}
func (Reset) sealed()          {}

// Describe returns the op name of cmd for logs and metrics.
func Describe(cmd Command) string {
	if cmd == nil {
		return "none"
	}
	return cmd.Op()
}
