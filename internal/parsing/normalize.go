package parsing

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/jonathan/resume-builder/internal/types"
)

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number so
// their literal text survives normalization.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// DecodeResume strictly decodes a stored or imported résumé document and then
// normalizes it. Unlike NormalizeResumeJSON it reports syntax errors.
func DecodeResume(data []byte) (types.ResumeData, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return types.NewResumeData(), &ParseError{Message: "invalid resume JSON", Cause: err}
	}
	if _, ok := v.(map[string]any); !ok {
		return types.NewResumeData(), &ParseError{Message: "resume JSON must be an object"}
	}
	return NormalizeResume(v), nil
}

// NormalizeResumeJSON decodes and normalizes raw résumé JSON.
// Undecodable input yields the empty résumé.
func NormalizeResumeJSON(data []byte) types.ResumeData {
	v, err := decodeJSON(data)
	if err != nil {
		return types.NewResumeData()
	}
	return NormalizeResume(v)
}

// NormalizeResume coerces an arbitrary decoded JSON value into a fully
// populated ResumeData. Fields of unexpected shape are treated as absent,
// non-object list entries are dropped, and list entries get an id unique
// within their list.
func NormalizeResume(v any) types.ResumeData {
	out := types.NewResumeData()
	obj := asObject(v)
	if obj == nil {
		return out
	}

	info := asObject(obj["personalInfo"])
	out.PersonalInfo = types.PersonalInfo{
		Name:      asString(info["name"]),
		Email:     asString(info["email"]),
		Phone:     asString(info["phone"]),
		Location:  asString(info["location"]),
		LinkedIn:  asString(info["linkedin"]),
		GitHub:    asString(info["github"]),
		Portfolio: asString(info["portfolio"]),
	}
	out.Summary = asString(obj["summary"])

	taken := make(map[string]bool)
	for _, e := range asObjects(obj["experience"]) {
		out.Experience = append(out.Experience, types.ExperienceItem{
			ID:           types.UniqueID(asString(e["id"]), taken),
			Title:        asString(e["title"]),
			Company:      asString(e["company"]),
			Location:     asString(e["location"]),
			StartDate:    asString(e["startDate"]),
			EndDate:      asString(e["endDate"]),
			Achievements: asStrings(e["achievements"]),
		})
	}

	taken = make(map[string]bool)
	for _, e := range asObjects(obj["education"]) {
		out.Education = append(out.Education, types.EducationItem{
			ID:              types.UniqueID(asString(e["id"]), taken),
			Degree:          asString(e["degree"]),
			Institution:     asString(e["institution"]),
			Location:        asString(e["location"]),
			StartDate:       asString(e["startDate"]),
			EndDate:         asString(e["endDate"]),
			GPA:             asString(e["gpa"]),
			RelevantCourses: asStrings(e["relevantCourses"]),
		})
	}

	for _, s := range asObjects(obj["skills"]) {
		out.Skills = append(out.Skills, types.SkillCategory{
			Category: asString(s["category"]),
			Items:    asStrings(s["items"]),
		})
	}

	taken = make(map[string]bool)
	for _, p := range asObjects(obj["projects"]) {
		out.Projects = append(out.Projects, types.ProjectItem{
			ID:           types.UniqueID(asString(p["id"]), taken),
			Name:         asString(p["name"]),
			Description:  asString(p["description"]),
			Technologies: asStrings(p["technologies"]),
			Link:         asString(p["link"]),
		})
	}

	taken = make(map[string]bool)
	for _, c := range asObjects(obj["certifications"]) {
		out.Certifications = append(out.Certifications, types.CertificationItem{
			ID:     types.UniqueID(asString(c["id"]), taken),
			Name:   asString(c["name"]),
			Issuer: asString(c["issuer"]),
			Date:   asString(c["date"]),
		})
	}

	return out
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asObjects(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// asString accepts strings and numbers; anything else is absent.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func asStrings(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch item.(type) {
		case string, json.Number, float64:
			out = append(out, asString(item))
		}
	}
	return out
}

// truthy mirrors JSON truthiness: null, false, 0 and "" are absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	}
	return true
}
