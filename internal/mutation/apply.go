package mutation

import (
	"strconv"
	"strings"

	"resume-studio/internal/model"
)

// Apply returns the document that results from cmd. When cmd cannot be
// applied, doc is returned as is.
func Apply(doc model.Document, cmd Command) model.Document {
	next, _ := Step(doc, cmd)
	return next
}

// Step is Apply that also reports whether anything changed.
func Step(doc model.Document, cmd Command) (model.Document, bool) {
	switch c := cmd.(type) {
	case nil:
		return doc, false
	case Reset:
		return model.New(), true
	case Replace:
		return load(c.Document), true
	}

	next := doc.Clone()
	var ok bool
	switch c := cmd.(type) {
	case SetField:
		ok = setField(&next, c.Path, strings.TrimSpace(c.Value))
	case AddEntry:
		ok = addEntry(&next, c.List, c.Entry)
	case DeleteEntry:
		ok = deleteEntry(&next, c.List, c.Index)
	case Reorder:
		ok = reorder(&next, c.List, c.From, c.To)
	case ToggleBullet:
		ok = toggleBullet(&next, c)
	case EditBulletText:
		ok = editBulletText(&next, c)
	case ReorderBullets:
		if bs, found := bullets(&next, c.Entry); found {
			*bs, ok = move(*bs, c.From, c.To)
		}
	case AddBullet:
		text := strings.TrimSpace(c.Text)
		if bs, found := bullets(&next, c.Entry); found && text != "" {
			*bs = append(*bs, model.NewBullet(text, model.OriginUser, ""))
			ok = true
		}
	case DeleteBullet:
		if bs, found := bullets(&next, c.Entry); found {
			if i := model.FindBullet(*bs, c.Bullet); i >= 0 {
				*bs, ok = removeAt(*bs, i)
			}
		}
	}
	if !ok {
		return doc, false
	}
	return next, true
}

// load prepares an externally supplied document: deep copy, trimmed entry
// text and fresh bullet ids.
func load(d model.Document) model.Document {
	out := model.New()
	out.Identity = trimIdentity(d.Identity)
	out.Summary = strings.TrimSpace(d.Summary)
	out.CoverLetter = strings.TrimSpace(d.CoverLetter)
	out.Skills = d.Skills.Clone()
	for _, p := range d.Experience {
		out.Experience = append(out.Experience, cleanPosition(p))
	}
	for _, c := range d.Education {
		out.Education = append(out.Education, cleanCredential(c))
	}
	for _, p := range d.Projects {
		out.Projects = append(out.Projects, cleanProject(p))
	}
	for _, c := range d.Certifications {
		out.Certifications = append(out.Certifications, model.Certification{
			Label: strings.TrimSpace(c.Label),
			Link:  strings.TrimSpace(c.Link),
		})
	}
	if d.Volunteer != nil {
		v := cleanPosition(*d.Volunteer)
		out.Volunteer = &v
	}
	return out
}

func trimIdentity(id model.Identity) model.Identity {
	return model.Identity{
		Name:      strings.TrimSpace(id.Name),
		Title:     strings.TrimSpace(id.Title),
		Phone:     strings.TrimSpace(id.Phone),
		Email:     strings.TrimSpace(id.Email),
		LinkedIn:  strings.TrimSpace(id.LinkedIn),
		Portfolio: strings.TrimSpace(id.Portfolio),
		GitHub:    strings.TrimSpace(id.GitHub),
	}
}

func cleanBullets(in []model.Bullet) []model.Bullet {
	out := []model.Bullet{}
	for _, b := range in {
		b.Text = strings.TrimSpace(b.Text)
		b.Category = strings.TrimSpace(b.Category)
		if b.Text == "" {
			continue
		}
		out = append(out, b)
	}
	return model.Reissue(out)
}

func cleanPosition(p model.Position) model.Position {
	return model.Position{
		Title:        strings.TrimSpace(p.Title),
		Organization: strings.TrimSpace(p.Organization),
		Location:     strings.TrimSpace(p.Location),
		StartDate:    strings.TrimSpace(p.StartDate),
		EndDate:      strings.TrimSpace(p.EndDate),
		Bullets:      cleanBullets(p.Bullets),
		Technologies: splitLabels(strings.Join(p.Technologies, ",")),
	}
}

func cleanProject(p model.Project) model.Project {
	return model.Project{
		Name:         strings.TrimSpace(p.Name),
		Organization: strings.TrimSpace(p.Organization),
		Location:     strings.TrimSpace(p.Location),
		StartDate:    strings.TrimSpace(p.StartDate),
		EndDate:      strings.TrimSpace(p.EndDate),
		Link:         strings.TrimSpace(p.Link),
		Bullets:      cleanBullets(p.Bullets),
	}
}

func cleanCredential(c model.Credential) model.Credential {
	return model.Credential{
		Degree:      strings.TrimSpace(c.Degree),
		Institution: strings.TrimSpace(c.Institution),
		Location:    strings.TrimSpace(c.Location),
		StartDate:   strings.TrimSpace(c.StartDate),
		EndDate:     strings.TrimSpace(c.EndDate),
		Details:     strings.TrimSpace(c.Details),
	}
}

func setField(d *model.Document, path, v string) bool {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "summary":
		if len(parts) == 1 {
			d.Summary = v
			return true
		}
	case "coverLetter":
		if len(parts) == 1 {
			d.CoverLetter = v
			return true
		}
	case "identity":
		if len(parts) == 2 {
			return setIdentity(&d.Identity, parts[1], v)
		}
	case "volunteer":
		if len(parts) == 2 && d.Volunteer != nil {
			return setPosition(d.Volunteer, parts[1], v)
		}
	case "experience", "projects", "education", "certifications":
		if len(parts) != 3 {
			return false
		}
		i, err := strconv.Atoi(parts[1])
		if err != nil {
			return false
		}
		switch parts[0] {
		case "experience":
			return inBounds(len(d.Experience), i) && setPosition(&d.Experience[i], parts[2], v)
		case "projects":
			return inBounds(len(d.Projects), i) && setProject(&d.Projects[i], parts[2], v)
		case "education":
			return inBounds(len(d.Education), i) && setCredential(&d.Education[i], parts[2], v)
		case "certifications":
			return inBounds(len(d.Certifications), i) && setCertification(&d.Certifications[i], parts[2], v)
		}
	}
	return false
}

func setIdentity(id *model.Identity, field, v string) bool {
	switch field {
	case "name":
		id.Name = v
	case "title":
		id.Title = v
	case "phone":
		id.Phone = v
	case "email":
		id.Email = v
	case "linkedin":
		id.LinkedIn = v
	case "portfolio":
		id.Portfolio = v
	case "github":
		id.GitHub = v
	default:
		return false
	}
	return true
}

func setPosition(p *model.Position, field, v string) bool {
	switch field {
	case "title":
		p.Title = v
	case "organization":
		p.Organization = v
	case "location":
		p.Location = v
	case "startDate":
		p.StartDate = v
	case "endDate":
		p.EndDate = v
	case "technologies":
		p.Technologies = splitLabels(v)
	default:
		return false
	}
	return true
}

func setProject(p *model.Project, field, v string) bool {
	switch field {
	case "name":
		p.Name = v
	case "organization":
		p.Organization = v
	case "location":
		p.Location = v
	case "startDate":
		p.StartDate = v
	case "endDate":
		p.EndDate = v
	case "link":
		p.Link = v
	default:
		return false
	}
	return true
}

func setCredential(c *model.Credential, field, v string) bool {
	switch field {
	case "degree":
		c.Degree = v
	case "institution":
		c.Institution = v
	case "location":
		c.Location = v
	case "startDate":
		c.StartDate = v
	case "endDate":
		c.EndDate = v
	case "details":
		c.Details = v
	default:
		return false
	}
	return true
}

func setCertification(c *model.Certification, field, v string) bool {
	switch field {
	case "label":
		c.Label = v
	case "link":
		c.Link = v
	default:
		return false
	}
	return true
}

func addEntry(d *model.Document, list string, entry any) bool {
	ref, ok := parseList(list)
	if !ok {
		return false
	}
	switch e := deref(entry).(type) {
	case model.Position:
		switch ref.kind {
		case listExperience:
			d.Experience = append(d.Experience, cleanPosition(e))
			return true
		case listVolunteer:
			if d.Volunteer != nil {
				return false
			}
			v := cleanPosition(e)
			d.Volunteer = &v
			return true
		}
	case model.Project:
		if ref.kind == listProjects {
			d.Projects = append(d.Projects, cleanProject(e))
			return true
		}
	case model.Credential:
		if ref.kind == listEducation {
			d.Education = append(d.Education, cleanCredential(e))
			return true
		}
	case model.Certification:
		if ref.kind == listCertifications {
			return addCertification(d, e)
		}
	case string:
		label := strings.TrimSpace(e)
		if label == "" {
			return false
		}
		switch ref.kind {
		case listCertifications:
			return addCertification(d, model.Certification{Label: label})
		case listSkills:
			labels := d.Skills.Get(ref.key)
			if containsFold(labels, label) {
				return false
			}
			d.Skills = d.Skills.With(ref.key, append(labels, label))
			return true
		case listTechnologies:
			if !inBounds(len(d.Experience), ref.index) {
				return false
			}
			p := &d.Experience[ref.index]
			if containsFold(p.Technologies, label) {
				return false
			}
			p.Technologies = append(p.Technologies, label)
			return true
		}
	}
	return false
}

func addCertification(d *model.Document, c model.Certification) bool {
	c.Label = strings.TrimSpace(c.Label)
	c.Link = strings.TrimSpace(c.Link)
	d.Certifications = append(d.Certifications, c)
	return true
}

// deref lets callers pass either values or pointers as entries.
func deref(entry any) any {
	switch e := entry.(type) {
	case *model.Position:
		if e != nil {
			return *e
		}
	case *model.Project:
		if e != nil {
			return *e
		}
	case *model.Credential:
		if e != nil {
			return *e
		}
	case *model.Certification:
		if e != nil {
			return *e
		}
	case *string:
		if e != nil {
			return *e
		}
	default:
		return entry
	}
	return nil
}

func deleteEntry(d *model.Document, list string, i int) bool {
	ref, ok := parseList(list)
	if !ok {
		return false
	}
	switch ref.kind {
	case listExperience:
		d.Experience, ok = removeAt(d.Experience, i)
	case listEducation:
		d.Education, ok = removeAt(d.Education, i)
	case listProjects:
		d.Projects, ok = removeAt(d.Projects, i)
	case listCertifications:
		d.Certifications, ok = removeAt(d.Certifications, i)
	case listVolunteer:
		ok = d.Volunteer != nil && i == 0
		if ok {
			d.Volunteer = nil
		}
	case listSkills:
		var labels []string
		if labels, ok = removeAt(d.Skills.Get(ref.key), i); ok {
			d.Skills = d.Skills.With(ref.key, labels)
		}
	case listTechnologies:
		if !inBounds(len(d.Experience), ref.index) {
			return false
		}
		p := &d.Experience[ref.index]
		p.Technologies, ok = removeAt(p.Technologies, i)
	default:
		ok = false
	}
	return ok
}

func reorder(d *model.Document, list string, from, to int) bool {
	ref, ok := parseList(list)
	if !ok {
		return false
	}
	switch ref.kind {
	case listExperience:
		d.Experience, ok = move(d.Experience, from, to)
	case listEducation:
		d.Education, ok = move(d.Education, from, to)
	case listProjects:
		d.Projects, ok = move(d.Projects, from, to)
	case listCertifications:
		d.Certifications, ok = move(d.Certifications, from, to)
	case listSkills:
		var labels []string
		if labels, ok = move(d.Skills.Get(ref.key), from, to); ok {
			d.Skills = d.Skills.With(ref.key, labels)
		}
	case listTechnologies:
		if !inBounds(len(d.Experience), ref.index) {
			return false
		}
		p := &d.Experience[ref.index]
		p.Technologies, ok = move(p.Technologies, from, to)
	default:
		ok = false
	}
	return ok
}

func toggleBullet(d *model.Document, c ToggleBullet) bool {
	bs, found := bullets(d, c.Entry)
	if !found {
		return false
	}
	i := model.FindBullet(*bs, c.Bullet)
	if i < 0 || (*bs)[i].Enabled == c.Enabled {
		return false
	}
	(*bs)[i].Enabled = c.Enabled
	return true
}

func editBulletText(d *model.Document, c EditBulletText) bool {
	bs, found := bullets(d, c.Entry)
	if !found {
		return false
	}
	i := model.FindBullet(*bs, c.Bullet)
	if i < 0 {
		return false
	}
	text := strings.TrimSpace(c.Text)
	if text == "" {
		var ok bool
		*bs, ok = removeAt(*bs, i)
		return ok
	}
	if (*bs)[i].Text == text {
		return false
	}
	(*bs)[i].Text = text
	return true
}
