package formatters

import (
	"context"
	"fmt"
	"strings"
)

// SkillBullets is one group of generated bullets.
type SkillBullets struct {
	Skill   string   `json:"skill"`
	Bullets []string `json:"bullets"`
}

// Content is the Content Generator output shape.
type Content struct {
	BulletsBySkill []SkillBullets `json:"bulletsBySkill"`
	CoverLetter    string         `json:"coverLetter"`
}

// ContentFormatter generates bullets and a cover letter for a target role.
type ContentFormatter struct {
	transport Transport
	language  string
}

func NewContentFormatter(t Transport, language string) *ContentFormatter {
	return &ContentFormatter{transport: t, language: language}
}

// Format requests bullets for each of skills, grounded on the candidate's
// current experience.
func (cf *ContentFormatter) Format(ctx context.Context, role string, skills []string, experience []map[string]any) (Content, error) {
	instr := fmt.Sprintf(`LANGUAGE: write ALL text in %s.

Write resume bullets for the target role that demonstrate each requested skill, using only facts that fit the candidate's experience, and a short cover letter.

RULES:
1. Return ONLY valid JSON (no markdown, no code fences, no explanation)
2. One group per requested skill, in the requested order
3. 1-3 bullets per skill, each one sentence of 60-200 characters
4. Do NOT mention the company name in a bullet
5. coverLetter is plain text, 3 short paragraphs

OUTPUT FORMAT:
{"bulletsBySkill":[{"skill":"<skill>","bullets":["<bullet>"]}],"coverLetter":"<text>"}`, cf.language)

	userCtx := map[string]any{
		"role":         role,
		"skills":       skills,
		"experience":   experience,
		"instructions": instr,
	}
	var out Content
	if err := chat(ctx, cf.transport, "Generate content for "+strings.TrimSpace(role)+":\n"+mustMarshal(userCtx), &out); err != nil {
		return Content{}, err
	}
	return out, nil
}
