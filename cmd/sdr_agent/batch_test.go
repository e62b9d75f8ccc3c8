package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchTestCSV = `first_name,last_name,company_name,company_website,activity,linkedin_url,case_study,icp,sender_name,sender_title,sender_company,our_website,meeting_link
Jane,Doe,Acme,https://acme.example.com,Posted about automation,https://linkedin.com/in/jane-doe,Helped a fintech grow 30%,Logistics,Alex,AE,OurCo,https://ourco.example.com,https://calendly.com/x
John,Smith,Globex,https://globex.example.com,Hiring SDRs,https://linkedin.com/in/john-smith,Helped a fintech grow 30%,Logistics,Alex,AE,OurCo,https://ourco.example.com,https://calendly.com/x
`

func TestBatchCommand_MockProvider(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "prospects.csv")
	output := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(input, []byte(batchTestCSV), 0644))

	cmd := exec.Command(binaryPath, "batch", "-p", "mock",
		"--input", input, "--output", output)
	combined, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed: %s", string(combined))
	assert.Contains(t, string(combined), "ALL 2 PROSPECTS SUCCEEDED")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3, "header plus one row per prospect")
	assert.Contains(t, lines[1], "success")
	assert.Contains(t, lines[2], "success")
}

func TestBatchCommand_StrictFailsOnBadRow(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Second row is missing most required fields.
	badCSV := strings.Replace(batchTestCSV,
		"John,Smith,Globex,https://globex.example.com,Hiring SDRs,https://linkedin.com/in/john-smith,Helped a fintech grow 30%,Logistics,Alex,AE,OurCo,https://ourco.example.com,https://calendly.com/x",
		"John,,,,,,,,,,,,", 1)

	dir := t.TempDir()
	input := filepath.Join(dir, "prospects.csv")
	output := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(input, []byte(badCSV), 0644))

	cmd := exec.Command(binaryPath, "batch", "-p", "mock", "--strict",
		"--input", input, "--output", output)
	combined, err := cmd.CombinedOutput()

	assert.Error(t, err, "strict mode should fail when a row fails")
	assert.Contains(t, string(combined), "1 of 2 rows failed")

	data, readErr := os.ReadFile(output)
	require.NoError(t, readErr, "results are still written in strict mode")
	assert.Contains(t, string(data), "failed")
}

func TestBatchCommand_FailsWhenEveryRowFails(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Both rows are missing required fields, so the whole run produced
	// nothing usable and must exit non-zero even without --strict.
	badCSV := "first_name,last_name,company_name,company_website,activity,linkedin_url,case_study,icp,sender_name,sender_title,sender_company,our_website,meeting_link\n" +
		"Jane,,,,,,,,,,,,\n" +
		"John,,,,,,,,,,,,\n"

	dir := t.TempDir()
	input := filepath.Join(dir, "prospects.csv")
	output := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(input, []byte(badCSV), 0644))

	cmd := exec.Command(binaryPath, "batch", "-p", "mock",
		"--input", input, "--output", output)
	combined, err := cmd.CombinedOutput()

	assert.Error(t, err, "a run where every row failed should exit non-zero")
	assert.Contains(t, string(combined), "all 2 rows failed")

	data, readErr := os.ReadFile(output)
	require.NoError(t, readErr, "the results file is still written")
	assert.Contains(t, string(data), "failed")
}

func TestBatchCommand_MissingColumn(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "prospects.csv")
	require.NoError(t, os.WriteFile(input, []byte("first_name,last_name\nJane,Doe\n"), 0644))

	cmd := exec.Command(binaryPath, "batch", "-p", "mock", "--input", input)
	combined, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(combined), "company_name")
}

func TestCompletedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	content := "first_name,status,subject,body,error\n" +
		"Jane,success,Hello,Body,\n" +
		"John,failed,,,boom\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	done, err := completedRows(path, 2)
	require.NoError(t, err)
	assert.True(t, done[0])
	assert.False(t, done[1])

	// A missing file means nothing is done yet.
	done, err = completedRows(filepath.Join(dir, "absent.csv"), 2)
	require.NoError(t, err)
	assert.Empty(t, done)
}
