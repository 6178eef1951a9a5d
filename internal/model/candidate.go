package model

import "time"

// Candidate is one uploaded resume together with the candidate's metadata.
// It carries no persistence tags so it can travel between HTTP, service and storage layers.
type Candidate struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	DateOfBirth    string    `json:"dob"`
	ContactEmail   string    `json:"contact_email"`
	ContactNumber  string    `json:"contact_number"`
	ContactAddress string    `json:"contact_address"`
	Education      string    `json:"education"`
	GraduationYear int       `json:"graduation_year"`
	Experience     int       `json:"experience"`
	Skills         []string  `json:"skills"`
	ResumeFilePath string    `json:"resume_file_path"`
	CreatedAt      time.Time `json:"created_at"`
}

// CandidateSummary is the reduced projection returned when listing candidates.
type CandidateSummary struct {
	ID             int64    `json:"id"`
	FullName       string   `json:"full_name"`
	GraduationYear int      `json:"graduation_year"`
	Experience     int      `json:"experience"`
	Skills         []string `json:"skills"`
	ContactEmail   string   `json:"contact_email"`
}

// Summary projects the candidate onto its list view.
func (c Candidate) Summary() CandidateSummary {
	return CandidateSummary{
		ID:             c.ID,
		FullName:       c.FullName,
		GraduationYear: c.GraduationYear,
		Experience:     c.Experience,
		Skills:         c.Skills,
		ContactEmail:   c.ContactEmail,
	}
}
