package models

// Application is a job application owned by the hiring workflow.
// Chat uses it only as the trigger for an employer/applicant room.
type Application struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	EmployerID  string `gorm:"size:64;not null" json:"employer_id"`
	ApplicantID string `gorm:"size:64;not null" json:"applicant_id"`
	Status      string `gorm:"size:32;not null" json:"status"`
	JobTitle    string `gorm:"size:255" json:"job_title"`
}

func (Application) TableName() string { return "job_applications" }
