package models

// Checklist statuses for assembled submission folders.
const (
	StatusOK      = "OK"
	StatusDraft   = "DRAFT"
	StatusMissing = "MISSING"
)

// ChecklistRow is one line of the submission checklist.
type ChecklistRow struct {
	Key            string `yaml:"key" json:"key"`
	Label          string `yaml:"label" json:"label"`
	Status         string `yaml:"status" json:"status"`
	Source         string `yaml:"source,omitempty" json:"source,omitempty"`
	SubmissionPath string `yaml:"submission_path,omitempty" json:"submission_path,omitempty"`
}
