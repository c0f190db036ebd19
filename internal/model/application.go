package model

import "time"

// Application statuses, in workflow order. Revision statuses
// (StatusLetterPending, StatusJW02Pending) park the application while HQ
// reworks a rejected upload.
const (
	StatusDraft             = "draft"
	StatusSubmitted         = "submitted"
	StatusUnderReview       = "under_review"
	StatusDocumentsVerified = "documents_verified"
	StatusPaymentVerified   = "payment_verified"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusInProgress        = "in_progress"
	StatusLetterUploaded    = "admission_letter_uploaded"
	StatusLetterApproved    = "admission_letter_approved"
	StatusJW02Uploaded      = "jw02_uploaded"
	StatusJW02Approved      = "jw02_approved"
	StatusLetterPending     = "letter_pending"
	StatusJW02Pending       = "jw02_pending"
	StatusComplete          = "complete"
)

// DocumentFields names the nine required document slots of an application,
// in display order. The names double as multipart form field names and as
// storage-key components.
var DocumentFields = []string{
	"passport",
	"photo",
	"graduation_certificate",
	"criminal_record",
	"medical_examination",
	"letter_of_recommendation_1",
	"letter_of_recommendation_2",
	"study_plan",
	"english_certificate",
}

// Documents holds the storage keys of an application's uploaded files.
// Empty string means the slot has not been filled yet.
type Documents struct {
	Passport                 string `json:"passport,omitempty"`
	Photo                    string `json:"photo,omitempty"`
	GraduationCertificate    string `json:"graduation_certificate,omitempty"`
	CriminalRecord           string `json:"criminal_record,omitempty"`
	MedicalExamination       string `json:"medical_examination,omitempty"`
	LetterOfRecommendation1  string `json:"letter_of_recommendation_1,omitempty"`
	LetterOfRecommendation2  string `json:"letter_of_recommendation_2,omitempty"`
	StudyPlan                string `json:"study_plan,omitempty"`
	EnglishCertificate       string `json:"english_certificate,omitempty"`
}

// Get returns the storage key stored in the named slot.
func (d *Documents) Get(field string) string {
	switch field {
	case "passport":
		return d.Passport
	case "photo":
		return d.Photo
	case "graduation_certificate":
		return d.GraduationCertificate
	case "criminal_record":
		return d.CriminalRecord
	case "medical_examination":
		return d.MedicalExamination
	case "letter_of_recommendation_1":
		return d.LetterOfRecommendation1
	case "letter_of_recommendation_2":
		return d.LetterOfRecommendation2
	case "study_plan":
		return d.StudyPlan
	case "english_certificate":
		return d.EnglishCertificate
	}
	return ""
}

// Set stores a storage key in the named slot. Unknown names are ignored.
func (d *Documents) Set(field, key string) {
	switch field {
	case "passport":
		d.Passport = key
	case "photo":
		d.Photo = key
	case "graduation_certificate":
		d.GraduationCertificate = key
	case "criminal_record":
		d.CriminalRecord = key
	case "medical_examination":
		d.MedicalExamination = key
	case "letter_of_recommendation_1":
		d.LetterOfRecommendation1 = key
	case "letter_of_recommendation_2":
		d.LetterOfRecommendation2 = key
	case "study_plan":
		d.StudyPlan = key
	case "english_certificate":
		d.EnglishCertificate = key
	}
}

// Missing returns the display names of unfilled slots.
func (d *Documents) Missing() []string {
	var missing []string
	for _, f := range DocumentFields {
		if d.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Application is a student's application to one scholarship. Office is the
// branch that owns the application; AssignedAgentID and AssignedHQID are
// filled as the workflow advances.
type Application struct {
	ID              int64      `json:"app_id"`
	ScholarshipID   int64      `json:"scholarship_id"`
	UserID          int64      `json:"user_id"`
	OfficeID        *int64     `json:"office_id,omitempty"`
	Status          string     `json:"status"`
	AppliedDate     time.Time  `json:"applied_date"`
	Documents       Documents  `json:"documents"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AssignedAgentID *int64     `json:"assigned_agent_id,omitempty"`
	AssignedHQID    *int64     `json:"assigned_hq_id,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	ApprovedDate    *time.Time `json:"approved_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
}

// Upload review statuses shared by admission letters and JW02 forms.
const (
	UploadPendingVerification = "pending_verification"
	UploadApproved            = "approved"
	UploadRevisionRequested   = "revision_requested"
)

// Kinds of reviewable uploads.
const (
	UploadKindLetter = "admission_letter"
	UploadKindJW02   = "jw02"
)

// ReviewedUpload is an admission letter or JW02 form uploaded by HQ and
// reviewed by the assigned agent. Kind distinguishes the two tables of the
// original schema.
type ReviewedUpload struct {
	ID            int64      `json:"id"`
	Kind          string     `json:"kind"`
	ApplicationID int64      `json:"application_id"`
	UploadedByID  *int64     `json:"uploaded_by_id,omitempty"`
	FileKey       string     `json:"file"`
	Status        string     `json:"status"`
	RevisionNote  string     `json:"revision_note,omitempty"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedByID  *int64     `json:"approved_by_id,omitempty"`
}

// StatusHistory is one audit-trail entry of an application's transitions.
type StatusHistory struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status"`
	ChangedByID   *int64    `json:"changed_by_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}
