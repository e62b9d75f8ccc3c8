package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shegge-stack/EmailGenerator/internal/schemas"
)

var schemaFiles = []string{
	"prospect.schema.json",
	"email_result.schema.json",
	"sequence_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_HaveJSONSchemaShape(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "type")
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestProspectSchema_AcceptsCompleteRecord(t *testing.T) {
	schemaData, err := os.ReadFile("prospect.schema.json")
	require.NoError(t, err)

	doc := `{
		"first_name": "Jane",
		"last_name": "Doe",
		"company_name": "Acme",
		"company_website": "https://acme.example.com",
		"activity": "Posted about warehouse automation",
		"linkedin_url": "https://www.linkedin.com/in/jane-doe",
		"case_study": "We helped a fintech company increase ARR by 30% in 6 months.",
		"icp": "Mid-market logistics companies",
		"sender_name": "Alex Rivera",
		"sender_title": "Account Executive",
		"sender_company": "OurCo",
		"our_website": "https://ourco.example.com",
		"meeting_link": "https://calendly.com/yourcompany/demo",
		"industry": "Robotics",
		"title": "CTO"
	}`
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), doc))
}

func TestProspectSchema_RejectsIncompleteRecord(t *testing.T) {
	schemaData, err := os.ReadFile("prospect.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaData), `{"first_name": "Jane"}`)
	require.Error(t, err)

	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestEmailResultSchema_EnforcesSpamRiskEnum(t *testing.T) {
	schemaData, err := os.ReadFile("email_result.schema.json")
	require.NoError(t, err)

	valid := `{"subject": "S", "body": "B", "raw_text": "raw",
		"quality": {"word_count": 40, "subject_length": 1, "personalization": true,
		"has_call_to_action": true, "spam_risk": "Low"}}`
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData), valid))

	invalid := `{"subject": "S", "body": "B", "raw_text": "raw",
		"quality": {"word_count": 40, "subject_length": 1, "personalization": true,
		"has_call_to_action": true, "spam_risk": "Extreme"}}`
	assert.Error(t, schemas.ValidateJSONString(string(schemaData), invalid))
}

func TestSequenceResultSchema_RequiresSteps(t *testing.T) {
	schemaData, err := os.ReadFile("sequence_result.schema.json")
	require.NoError(t, err)

	assert.Error(t, schemas.ValidateJSONString(string(schemaData), `{"steps": [], "raw_text": ""}`))
	assert.NoError(t, schemas.ValidateJSONString(string(schemaData),
		`{"steps": [{"step": 1, "subject": "S", "body": "B"}], "raw_text": "raw"}`))
}
