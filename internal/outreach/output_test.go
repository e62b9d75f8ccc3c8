package outreach

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

func TestEmailFilename(t *testing.T) {
	p := &types.Prospect{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme Robotics"}
	if got := EmailFilename(p); got != "Jane_Doe_Acme_Robotics.txt" {
		t.Errorf("EmailFilename = %q", got)
	}
	if got := SequenceFilename(p); got != "Jane_Doe_Acme_Robotics_sequence.txt" {
		t.Errorf("SequenceFilename = %q", got)
	}

	p.CompanyName = "Acme/Robotics, Inc."
	got := EmailFilename(p)
	if strings.ContainsAny(got, "/,") {
		t.Errorf("EmailFilename = %q, unsafe characters must be stripped", got)
	}
}

func TestSaveEmail(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated_emails")
	p := &types.Prospect{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme"}

	path, err := SaveEmail(dir, p, &types.EmailResult{Subject: "Hello", Body: "The body."})
	if err != nil {
		t.Fatalf("SaveEmail returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "Subject: Hello\n\nThe body.\n" {
		t.Errorf("output = %q", string(data))
	}
}

func TestSaveEmailDegradedParse(t *testing.T) {
	dir := t.TempDir()
	p := &types.Prospect{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme"}

	path, err := SaveEmail(dir, p, &types.EmailResult{Body: "Body only."})
	if err != nil {
		t.Fatalf("SaveEmail returned error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "Body only.\n" {
		t.Errorf("output = %q, want body without subject header", string(data))
	}
}

func TestSaveSequence(t *testing.T) {
	dir := t.TempDir()
	p := &types.Prospect{FirstName: "Jane", LastName: "Doe", CompanyName: "Acme"}
	seq := &types.SequenceResult{Steps: []types.SequenceStep{
		{Step: 1, Subject: "A", Body: "First."},
		{Step: 2, Subject: "B", Body: "Second."},
	}}

	path, err := SaveSequence(dir, p, seq)
	if err != nil {
		t.Fatalf("SaveSequence returned error: %v", err)
	}
	data, _ := os.ReadFile(path)
	text := string(data)
	if !strings.Contains(text, "Step 1\nSubject: A") || !strings.Contains(text, "Step 2\nSubject: B") {
		t.Errorf("output = %q", text)
	}
	if !strings.Contains(text, strings.Repeat("-", 40)) {
		t.Errorf("steps should be separated by a divider")
	}
}
