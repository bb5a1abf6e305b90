package model

import "slices"

// Clone returns a deep copy of d. Nothing in the copy aliases d, so the
// copy can be edited freely and handed out as the next document value.
func (d Document) Clone() Document {
	out := d
	out.Experience = clonePositions(d.Experience)
	out.Education = slices.Clone(d.Education)
	out.Skills = d.Skills.Clone()
	out.Projects = cloneProjects(d.Projects)
	out.Certifications = slices.Clone(d.Certifications)
	if d.Volunteer != nil {
		v := d.Volunteer.Clone()
		out.Volunteer = &v
	}
	return out
}

func (p Position) Clone() Position {
	out := p
	out.Bullets = slices.Clone(p.Bullets)
	out.Technologies = slices.Clone(p.Technologies)
	return out
}

func (p Project) Clone() Project {
	out := p
	out.Bullets = slices.Clone(p.Bullets)
	return out
}

func clonePositions(in []Position) []Position {
	if in == nil {
		return nil
	}
	out := make([]Position, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
