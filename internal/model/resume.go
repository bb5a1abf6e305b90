package model

// Go models for the canonical resume document. JSON field names match
// resume.schema.json, which is used to validate Resume Parser output.

type Identity struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	GitHub    string `json:"github"`
}

// Position is an experience or volunteer entry.
type Position struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Bullets      []Bullet `json:"bullets"`
	Technologies []string `json:"technologies"`
}

type Project struct {
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Link         string   `json:"link"`
	Bullets      []Bullet `json:"bullets"`
}

type Credential struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Details     string `json:"details"`
}

// Document is the root aggregate. A session owns exactly one Document value
// and replaces it wholesale after every successful command.
type Document struct {
	Identity       Identity        `json:"identity"`
	Summary        string          `json:"summary"`
	Experience     []Position      `json:"experience"`
	Education      []Credential    `json:"education"`
	Skills         Skills          `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Volunteer      *Position       `json:"volunteer"`
	CoverLetter    string          `json:"coverLetter"`
}

// New returns the empty document a session starts with.
func New() Document {
	return Document{
		Experience:     []Position{},
		Education:      []Credential{},
		Projects:       []Project{},
		Certifications: []Certification{},
	}
}

// DateRange joins start and end the way both renderers print them.
func DateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	default:
		return end
	}
}
