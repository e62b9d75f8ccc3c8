// Package types provides type definitions for structured data used throughout the outreach generator.
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Prospect describes an outreach target together with the sender identity
// and the value proposition used to personalize the email. Field names
// mirror the CSV column headers and JSON keys accepted by batch mode.
type Prospect struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	CompanyName    string `json:"company_name" validate:"required"`
	CompanyWebsite string `json:"company_website" validate:"required"`
	Activity       string `json:"activity" validate:"required"`
	LinkedInURL    string `json:"linkedin_url" validate:"required"`
	CaseStudy      string `json:"case_study" validate:"required"`
	ICP            string `json:"icp" validate:"required"`
	SenderName     string `json:"sender_name" validate:"required"`
	SenderTitle    string `json:"sender_title" validate:"required"`
	SenderCompany  string `json:"sender_company" validate:"required"`
	OurWebsite     string `json:"our_website" validate:"required"`
	MeetingLink    string `json:"meeting_link" validate:"required"`

	// Optional enrichment fields used by enhanced mode. Empty values fall
	// back to generic defaults at compose time rather than failing validation.
	Industry string `json:"industry,omitempty"`
	Title    string `json:"title,omitempty"`
}

// prospectValidate is shared so the JSON tag name registration runs once.
var prospectValidate = newProspectValidator()

func newProspectValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims surrounding whitespace from every field. Call before
// Validate so whitespace-only values are treated as missing.
func (p *Prospect) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	p.CompanyWebsite = strings.TrimSpace(p.CompanyWebsite)
	p.Activity = strings.TrimSpace(p.Activity)
	p.LinkedInURL = strings.TrimSpace(p.LinkedInURL)
	p.CaseStudy = strings.TrimSpace(p.CaseStudy)
	p.ICP = strings.TrimSpace(p.ICP)
	p.SenderName = strings.TrimSpace(p.SenderName)
	p.SenderTitle = strings.TrimSpace(p.SenderTitle)
	p.SenderCompany = strings.TrimSpace(p.SenderCompany)
	p.OurWebsite = strings.TrimSpace(p.OurWebsite)
	p.MeetingLink = strings.TrimSpace(p.MeetingLink)
	p.Industry = strings.TrimSpace(p.Industry)
	p.Title = strings.TrimSpace(p.Title)
}

// Validate normalizes the prospect and checks that every required field is
// non-empty. Returns a *ValidationError naming the first missing field so
// callers can report it before any network call is attempted.
func (p *Prospect) Validate() error {
	p.Normalize()

	if err := prospectValidate.Struct(p); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{
				Field:   errs[0].Field(),
				Message: "required field is empty",
			}
		}
		return err
	}
	return nil
}

// DisplayName returns the prospect's full name for logs and summaries.
func (p *Prospect) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
