// Package merging folds parsed résumé fragments into the accumulated session résumé.
package merging

import "github.com/jonathan/resume-builder/internal/types"

// Merge returns a new résumé with fragment folded into current.
// Non-empty personal-info fields and a non-empty summary overwrite; list sections
// are appended in order. An appended entry whose id is already used in the
// target list is given a fresh id. Neither input is modified or aliased.
func Merge(current, fragment types.ResumeData) types.ResumeData {
	out := current.Clone()
	frag := fragment.Clone()

	out.PersonalInfo = mergePersonalInfo(out.PersonalInfo, frag.PersonalInfo)
	if frag.Summary != "" {
		out.Summary = frag.Summary
	}

	taken := idsOf(out.Experience, func(e types.ExperienceItem) string { return e.ID })
	for _, e := range frag.Experience {
		e.ID = types.UniqueID(e.ID, taken)
		out.Experience = append(out.Experience, e)
	}

	taken = idsOf(out.Education, func(e types.EducationItem) string { return e.ID })
	for _, e := range frag.Education {
		e.ID = types.UniqueID(e.ID, taken)
		out.Education = append(out.Education, e)
	}

	out.Skills = append(out.Skills, frag.Skills...)

	taken = idsOf(out.Projects, func(p types.ProjectItem) string { return p.ID })
	for _, p := range frag.Projects {
		p.ID = types.UniqueID(p.ID, taken)
		out.Projects = append(out.Projects, p)
	}

	taken = idsOf(out.Certifications, func(c types.CertificationItem) string { return c.ID })
	for _, c := range frag.Certifications {
		c.ID = types.UniqueID(c.ID, taken)
		out.Certifications = append(out.Certifications, c)
	}

	return out
}

func mergePersonalInfo(cur, frag types.PersonalInfo) types.PersonalInfo {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	pick(&cur.Name, frag.Name)
	pick(&cur.Email, frag.Email)
	pick(&cur.Phone, frag.Phone)
	pick(&cur.Location, frag.Location)
	pick(&cur.LinkedIn, frag.LinkedIn)
	pick(&cur.GitHub, frag.GitHub)
	pick(&cur.Portfolio, frag.Portfolio)
	return cur
}

func idsOf[T any](items []T, id func(T) string) map[string]bool {
	taken := make(map[string]bool, len(items))
	for _, item := range items {
		taken[id(item)] = true
	}
	return taken
}
