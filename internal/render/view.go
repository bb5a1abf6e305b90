package render

import (
	"strings"

	"resume-studio/internal/model"
)

// The view is the renderer-neutral projection of an effective document.
// Both renderers walk the same view, which is what keeps their content
// selection identical.

type contact struct {
	Text string
	URL  string
}

type entry struct {
	Heading      string
	Dates        string
	Sub          string
	Location     string
	Link         contact
	Note         string
	Bullets      []string
	Technologies string
}

type skillLine struct {
	Label  string
	Values string
}

type sectionKind string

const (
	kindText    sectionKind = "text"
	kindEntries sectionKind = "entries"
	kindSkills  sectionKind = "skills"
	kindItems   sectionKind = "items"
)

type section struct {
	Key     string
	Kind    sectionKind
	Title   string
	Text    string
	Entries []entry
	Skills  []skillLine
	Items   []contact
}

type header struct {
	Name     string
	Title    string
	Contacts []contact
}

type view struct {
	Empty       bool
	Placeholder string
	Header      header
	Sections    []section
}

func buildView(doc model.Document, labels Labels) view {
	eff := Effective(doc)
	if !HasContent(eff) {
		return view{Empty: true, Placeholder: labels.Get(KeyNoContent)}
	}

	v := view{Header: buildHeader(eff.Identity)}
	for _, key := range SectionOrder {
		s := section{Key: key, Title: labels.Get(key)}
		switch key {
		case KeySummary:
			s.Kind, s.Text = kindText, eff.Summary
		case KeyExperience:
			s.Kind = kindEntries
			for _, p := range eff.Experience {
				s.Entries = append(s.Entries, positionEntry(p))
			}
		case KeyVolunteer:
			s.Kind = kindEntries
			if eff.Volunteer != nil {
				s.Entries = append(s.Entries, positionEntry(*eff.Volunteer))
			}
		case KeySkills:
			s.Kind = kindSkills
			for _, k := range model.SkillKeys() {
				if values := eff.Skills.Get(k); len(values) > 0 {
					s.Skills = append(s.Skills, skillLine{Label: k.Label(), Values: strings.Join(values, ", ")})
				}
			}
		case KeyProjects:
			s.Kind = kindEntries
			for _, p := range eff.Projects {
				s.Entries = append(s.Entries, entry{
					Heading:  p.Name,
					Dates:    model.DateRange(p.StartDate, p.EndDate),
					Sub:      p.Organization,
					Location: p.Location,
					Link:     linkContact(p.Link),
					Bullets:  bulletTexts(p.Bullets),
				})
			}
		case KeyCertifications:
			s.Kind = kindItems
			for _, c := range eff.Certifications {
				item := contact{Text: c.Label}
				if c.Link != "" {
					item.URL = absoluteURL(c.Link)
					item.Text = c.Label + " (" + hostLabel(c.Link) + ")"
				}
				s.Items = append(s.Items, item)
			}
		case KeyEducation:
			s.Kind = kindEntries
			for _, c := range eff.Education {
				heading, sub := c.Institution, c.Degree
				if heading == "" {
					heading, sub = c.Degree, ""
				}
				s.Entries = append(s.Entries, entry{
					Heading:  heading,
					Dates:    model.DateRange(c.StartDate, c.EndDate),
					Sub:      sub,
					Location: c.Location,
					Note:     c.Details,
				})
			}
		}
		if !s.empty() {
			v.Sections = append(v.Sections, s)
		}
	}
	return v
}

func (s section) empty() bool {
	return s.Text == "" && len(s.Entries) == 0 && len(s.Skills) == 0 && len(s.Items) == 0
}

func positionEntry(p model.Position) entry {
	heading, sub := p.Title, p.Organization
	if heading == "" {
		heading, sub = p.Organization, ""
	}
	return entry{
		Heading:      heading,
		Dates:        model.DateRange(p.StartDate, p.EndDate),
		Sub:          sub,
		Location:     p.Location,
		Bullets:      bulletTexts(p.Bullets),
		Technologies: strings.Join(p.Technologies, ", "),
	}
}

func bulletTexts(bs []model.Bullet) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Text)
	}
	return out
}

func buildHeader(id model.Identity) header {
	h := header{Name: id.Name, Title: id.Title}
	if id.Phone != "" {
		h.Contacts = append(h.Contacts, contact{Text: id.Phone, URL: "tel:" + strings.ReplaceAll(id.Phone, " ", "")})
	}
	if id.Email != "" {
		h.Contacts = append(h.Contacts, contact{Text: id.Email, URL: "mailto:" + id.Email})
	}
	for _, u := range []string{id.LinkedIn, id.Portfolio, id.GitHub} {
		if u != "" {
			h.Contacts = append(h.Contacts, linkContact(u))
		}
	}
	return h
}

func linkContact(u string) contact {
	if u == "" {
		return contact{}
	}
	return contact{Text: displayURL(u), URL: absoluteURL(u)}
}
