// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// ResumeData is the canonical structured résumé accumulated over a chat session.
// Slice fields are never nil once a value has gone through NewResumeData or
// parsing.NormalizeResume, so they serialize as [] rather than null.
type ResumeData struct {
	PersonalInfo   PersonalInfo        `json:"personalInfo"`
	Summary        string              `json:"summary"`
	Experience     []ExperienceItem    `json:"experience"`
	Education      []EducationItem     `json:"education"`
	Skills         []SkillCategory     `json:"skills"`
	Projects       []ProjectItem       `json:"projects"`
	Certifications []CertificationItem `json:"certifications"`
}

// PersonalInfo holds contact details. Optional URLs are empty strings when unknown.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// ExperienceItem is a single job. Dates are free-form strings ("Jan 2021", "Present").
type ExperienceItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Achievements []string `json:"achievements"`
}

// EducationItem is a single degree or program
type EducationItem struct {
	ID              string   `json:"id"`
	Degree          string   `json:"degree"`
	Institution     string   `json:"institution"`
	Location        string   `json:"location"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	GPA             string   `json:"gpa"`
	RelevantCourses []string `json:"relevantCourses"`
}

// SkillCategory groups skills under a label such as "Technical Skills"
type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// ProjectItem is a personal or professional project
type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

// CertificationItem is a certification with its issuer and date
type CertificationItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// NewResumeData returns the empty résumé a session starts with.
func NewResumeData() ResumeData {
	return ResumeData{
		Experience:     []ExperienceItem{},
		Education:      []EducationItem{},
		Skills:         []SkillCategory{},
		Projects:       []ProjectItem{},
		Certifications: []CertificationItem{},
	}
}

// IsEmpty reports whether the résumé carries no content at all.
func (r ResumeData) IsEmpty() bool {
	return r.PersonalInfo == (PersonalInfo{}) &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Certifications) == 0
}

// Clone returns a deep copy so callers can treat ResumeData as an immutable snapshot.
func (r ResumeData) Clone() ResumeData {
	out := ResumeData{
		PersonalInfo:   r.PersonalInfo,
		Summary:        r.Summary,
		Experience:     make([]ExperienceItem, 0, len(r.Experience)),
		Education:      make([]EducationItem, 0, len(r.Education)),
		Skills:         make([]SkillCategory, 0, len(r.Skills)),
		Projects:       make([]ProjectItem, 0, len(r.Projects)),
		Certifications: make([]CertificationItem, 0, len(r.Certifications)),
	}
	for _, e := range r.Experience {
		e.Achievements = cloneStrings(e.Achievements)
		out.Experience = append(out.Experience, e)
	}
	for _, e := range r.Education {
		e.RelevantCourses = cloneStrings(e.RelevantCourses)
		out.Education = append(out.Education, e)
	}
	for _, s := range r.Skills {
		s.Items = cloneStrings(s.Items)
		out.Skills = append(out.Skills, s)
	}
	for _, p := range r.Projects {
		p.Technologies = cloneStrings(p.Technologies)
		out.Projects = append(out.Projects, p)
	}
	out.Certifications = append(out.Certifications, r.Certifications...)
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// GenerateID returns a short opaque identifier used as a stable UI key for list entries.
// Uniqueness only matters within a single list.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// UniqueID returns id if it is non-empty and not yet in taken, otherwise a fresh ID.
// The returned ID is recorded in taken.
func UniqueID(id string, taken map[string]bool) string {
	for id == "" || taken[id] {
		id = GenerateID()
	}
	taken[id] = true
	return id
}
