package graph

import "strings"

const notAvailable = "N/A"

// Profile is the signed-in user as returned by the /me endpoint.
type Profile struct {
	DisplayName       *string `json:"displayName"`
	Mail              *string `json:"mail"`
	UserPrincipalName *string `json:"userPrincipalName"`
	JobTitle          *string `json:"jobTitle"`
	Department        *string `json:"department"`
	OfficeLocation    *string `json:"officeLocation"`
	MobilePhone       *string `json:"mobilePhone"`
}

// Email returns mail, falling back to the user principal name
func (p *Profile) Email() *string {
	if p.Mail != nil {
		return p.Mail
	}
	return p.UserPrincipalName
}

func orNA(value *string) string {
	if value == nil {
		return notAvailable
	}
	return *value
}

// Render formats the profile as the text returned to the caller
func Render(p *Profile) string {
	if p == nil {
		p = &Profile{}
	}
	lines := []string{
		"Display Name: " + orNA(p.DisplayName),
		"Email: " + orNA(p.Email()),
		"Job Title: " + orNA(p.JobTitle),
		"Department: " + orNA(p.Department),
		"Office Location: " + orNA(p.OfficeLocation),
		"Mobile Phone: " + orNA(p.MobilePhone),
	}
	return strings.Join(lines, "\n")
}
