package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume_DefaultResume(t *testing.T) {
	data, err := json.Marshal(types.NewResumeData())
	require.NoError(t, err)
	assert.NoError(t, ValidateResume(data))
}

func TestValidateResume_PopulatedResume(t *testing.T) {
	r := types.NewResumeData()
	r.PersonalInfo.Name = "Jane"
	r.Experience = append(r.Experience, types.ExperienceItem{ID: "1", Title: "Engineer", Achievements: []string{"Shipped"}})
	r.Certifications = append(r.Certifications, types.CertificationItem{ID: "c", Name: "AWS"})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NoError(t, ValidateResume(data))
}

func TestValidateResume_WrongTypes(t *testing.T) {
	err := ValidateResume([]byte(`{"personalInfo":{"phone":5551234},"experience":[{"title":"x"}]}`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "personalInfo.phone")
	missingID := false
	for _, f := range fields {
		if strings.HasPrefix(f, "experience.0") {
			missingID = true
		}
	}
	assert.True(t, missingID, "expected an error for the experience entry without an id")
}

func TestValidateResume_NotAnObject(t *testing.T) {
	err := ValidateResume([]byte(`[1,2,3]`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateResume_MalformedJSON(t *testing.T) {
	err := ValidateResume([]byte(`{"summary":`))

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateResumeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"summary":"Backend engineer"}`), 0o644))

	assert.NoError(t, ValidateResumeFile(path))
	assert.Error(t, ValidateResumeFile(filepath.Join(dir, "missing.json")))
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"x"}`))
	assert.Error(t, ValidateJSONString(schema, `{}`))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "summary", Message: "Invalid type"}}}
	assert.Equal(t, "validation failed:\n  1. summary: Invalid type\n", err.Error())
}

func TestResumeSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ResumeSchema()), &v))
	assert.Equal(t, "object", v["type"])
}
