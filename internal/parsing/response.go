// Package parsing interprets free-form model replies and extracts structured résumé fragments from them.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Replies substituted for the model text depending on the parse outcome.
const (
	UpdatedMessage       = "I've updated your resume. Check the preview!"
	ClarificationMessage = "I understand you want help with your resume. Could you provide more specific details about your work experience, education, or skills?"
	MalformedMessage     = "I tried to update your resume but encountered an error. Please try rephrasing your information."
)

// Kind classifies how a model reply was interpreted
type Kind string

// Kind values
const (
	KindResumeUpdate  Kind = "resume_update"
	KindClarification Kind = "clarification"
	KindPlain         Kind = "plain"
	KindMalformed     Kind = "malformed"
)

// Result is the interpretation of a single model reply.
// ResumeData is nil unless Kind is KindResumeUpdate.
type Result struct {
	ResumeData *types.ResumeData
	Message    string
	Kind       Kind
}

var clarificationKeywords = []string{"resume", "experience", "skill"}

// ParseAIResponse interprets a model reply. It never fails: text that cannot be
// understood degrades to a plain, clarification or apology message.
func ParseAIResponse(content string) Result {
	span, ok := ExtractJSONSpan(content)
	if !ok {
		return Result{Message: content, Kind: KindPlain}
	}

	v, err := decodeJSON([]byte(span))
	if err != nil {
		v, err = decodeJSON([]byte(stripFences(span)))
		if err != nil {
			return Result{Message: MalformedMessage, Kind: KindMalformed}
		}
	}

	obj := asObject(v)
	if obj == nil || !truthy(obj["resumeData"]) {
		if mentionsResume(content) {
			return Result{Message: ClarificationMessage, Kind: KindClarification}
		}
		return Result{Message: content, Kind: KindPlain}
	}

	data := NormalizeResume(obj["resumeData"])
	return Result{ResumeData: &data, Message: UpdatedMessage, Kind: KindResumeUpdate}
}

func mentionsResume(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range clarificationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
