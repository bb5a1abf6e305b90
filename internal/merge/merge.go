// Package merge folds Content Generator output into a resume document.
package merge

import (
	"regexp"
	"strings"

	"resume-studio/internal/model"
)

// SkillBullets is one generator group: the bullets written for one skill.
type SkillBullets struct {
	Skill   string   `json:"skill"`
	Bullets []string `json:"bullets"`
}

// Generated is the Content Generator result shape.
type Generated struct {
	BulletsBySkill []SkillBullets `json:"bulletsBySkill"`
	CoverLetter    string         `json:"coverLetter"`
}

type Outcome string

const (
	OutcomeMerged Outcome = "merged"
	// OutcomeNothingToMerge means there was no experience entry to receive
	// the generated bullets; the document is returned unchanged.
	OutcomeNothingToMerge Outcome = "nothing_to_merge"
)

// Result describes what Merge did.
type Result struct {
	Outcome  Outcome `json:"outcome"`
	Inserted int     `json:"inserted"`
	// PerEntry is the block size used to spread bullets over entries.
	PerEntry int `json:"perEntry"`
}

type pair struct {
	skill string
	text  string
}

// Merge distributes generated bullets over doc's experience entries in
// contiguous blocks of ceil(total/entries), clamping any overflow onto the
// last entry, and prepends each block to its entry disabled for review. The
// cover letter replaces the previous one.
func Merge(doc model.Document, gen Generated) (model.Document, Result) {
	n := len(doc.Experience)
	if n == 0 {
		return doc, Result{Outcome: OutcomeNothingToMerge}
	}

	trim := attributionTrimmer(doc.Experience)
	var pairs []pair
	for _, g := range gen.BulletsBySkill {
		skill := strings.TrimSpace(g.Skill)
		for _, b := range g.Bullets {
			if text := trim(strings.TrimSpace(b)); text != "" {
				pairs = append(pairs, pair{skill: skill, text: text})
			}
		}
	}

	next := doc.Clone()
	next.CoverLetter = strings.TrimSpace(gen.CoverLetter)

	total := len(pairs)
	if total == 0 {
		return next, Result{Outcome: OutcomeMerged}
	}
	perEntry := (total + n - 1) / n

	blocks := make([][]model.Bullet, n)
	for i, p := range pairs {
		target := i / perEntry
		if target > n-1 {
			target = n - 1
		}
		blocks[target] = append(blocks[target], model.NewBullet(p.text, model.OriginAI, p.skill))
	}
	for i, block := range blocks {
		if len(block) == 0 {
			continue
		}
		next.Experience[i].Bullets = append(block, next.Experience[i].Bullets...)
	}
	return next, Result{Outcome: OutcomeMerged, Inserted: total, PerEntry: perEntry}
}

// attributionTrimmer removes a trailing "at <Organization>" clause when the
// organization is one the document already lists.
func attributionTrimmer(positions []model.Position) func(string) string {
	var orgs []string
	for _, p := range positions {
		if o := strings.TrimSpace(p.Organization); o != "" {
			orgs = append(orgs, regexp.QuoteMeta(o))
		}
	}
	if len(orgs) == 0 {
		return func(s string) string { return s }
	}
	re := regexp.MustCompile(`(?i)[\s,]+at\s+(?:` + strings.Join(orgs, "|") + `)\s*([.!])?\s*$`)
	return func(s string) string {
		m := re.FindStringSubmatchIndex(s)
		if m == nil {
			return s
		}
		out := strings.TrimSpace(s[:m[0]])
		if m[2] >= 0 && out != "" {
			out += s[m[2]:m[3]]
		}
		return out
	}
}
