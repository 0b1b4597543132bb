package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// RenderMarkdown renders the résumé as a Markdown document.
// Sections with no content are omitted; the heading and contact block are always present.
func RenderMarkdown(r types.ResumeData) string {
	var b strings.Builder
	info := r.PersonalInfo

	b.WriteString("# " + info.Name + "\n\n")

	b.WriteString("**Contact Information**  \n")
	b.WriteString("Email: " + info.Email + "  \n")
	if info.Phone != "" {
		b.WriteString("Phone: " + info.Phone + "  \n")
	}
	if info.Location != "" {
		b.WriteString("Location: " + info.Location + "  \n")
	}
	if links := contactLinks(info); len(links) > 0 {
		b.WriteString(strings.Join(links, " | ") + "\n")
	}
	b.WriteString("\n")

	if r.Summary != "" {
		b.WriteString("## Professional Summary\n")
		b.WriteString(r.Summary + "\n\n")
	}

	if len(r.Experience) > 0 {
		b.WriteString("## Work Experience\n\n")
		for _, exp := range r.Experience {
			b.WriteString("### " + exp.Title + "\n")
			b.WriteString(entryLine(exp.Company, exp.Location, exp.StartDate, exp.EndDate))
			for _, a := range exp.Achievements {
				b.WriteString("- " + a + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(r.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, edu := range r.Education {
			b.WriteString("### " + edu.Degree + "\n")
			b.WriteString(entryLine(edu.Institution, edu.Location, edu.StartDate, edu.EndDate))
			if edu.GPA != "" {
				b.WriteString("- GPA: " + edu.GPA + "\n")
			}
			if len(edu.RelevantCourses) > 0 {
				b.WriteString("- Relevant Courses: " + strings.Join(edu.RelevantCourses, ", ") + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(r.Skills) > 0 {
		b.WriteString("## Skills\n\n")
		for _, s := range r.Skills {
			b.WriteString("**" + s.Category + ":** " + strings.Join(s.Items, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.Projects) > 0 {
		b.WriteString("## Projects\n\n")
		for _, p := range r.Projects {
			b.WriteString("### " + p.Name + "\n")
			b.WriteString(p.Description + "\n")
			if len(p.Technologies) > 0 {
				b.WriteString("- **Technologies:** " + strings.Join(p.Technologies, ", ") + "\n")
			}
			if p.Link != "" {
				b.WriteString("- **Link:** [" + p.Link + "](" + p.Link + ")\n")
			}
			b.WriteString("\n")
		}
	}

	if len(r.Certifications) > 0 {
		b.WriteString("## Certifications\n\n")
		for _, c := range r.Certifications {
			b.WriteString("- **" + c.Name + "** - " + c.Issuer + " (" + c.Date + ")\n")
		}
	}

	return b.String()
}

func contactLinks(info types.PersonalInfo) []string {
	var links []string
	if info.LinkedIn != "" {
		links = append(links, "[LinkedIn]("+info.LinkedIn+")")
	}
	if info.GitHub != "" {
		links = append(links, "[GitHub]("+info.GitHub+")")
	}
	if info.Portfolio != "" {
		links = append(links, "[Portfolio]("+info.Portfolio+")")
	}
	return links
}

// entryLine formats "**org** | location | start - end".
func entryLine(org, location, start, end string) string {
	return "**" + org + "** | " + location + " | " + start + " - " + end + "\n"
}
