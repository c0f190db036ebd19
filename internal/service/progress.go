package service

import "dfseducation/internal/model"

// totalSteps is the step index of a complete application.
const totalSteps = 11

// statusSteps maps an application status to its dashboard step index.
// Rejected is -1; revision statuses share the step of the upload they
// rework.
var statusSteps = map[string]int{
	model.StatusDraft:             0,
	model.StatusSubmitted:         1,
	model.StatusUnderReview:       2,
	model.StatusDocumentsVerified: 3,
	model.StatusPaymentVerified:   4,
	model.StatusApproved:          5,
	model.StatusInProgress:        6,
	model.StatusLetterUploaded:    7,
	model.StatusLetterApproved:    8,
	model.StatusJW02Uploaded:      9,
	model.StatusJW02Approved:      10,
	model.StatusComplete:          11,
	model.StatusRejected:          -1,
	model.StatusLetterPending:     7,
	model.StatusJW02Pending:       9,
}

var statusMessages = map[string]string{
	model.StatusDraft:             "Your application is saved as a draft.",
	model.StatusSubmitted:         "Your application has been submitted and is awaiting review.",
	model.StatusUnderReview:       "Your documents are being reviewed by our office team.",
	model.StatusDocumentsVerified: "Your documents have been verified. Please make the payment to proceed.",
	model.StatusPaymentVerified:   "Your payment has been verified. Your application is being reviewed by our agent.",
	model.StatusApproved:          "Your application has been approved and forwarded for processing.",
	model.StatusInProgress:        "Your university application is being processed.",
	model.StatusLetterUploaded:    "Your admission letter has been uploaded and is awaiting approval.",
	model.StatusLetterApproved:    "Your admission letter has been approved. Waiting for JW02 form.",
	model.StatusJW02Uploaded:      "Your JW02 form has been uploaded and is awaiting approval.",
	model.StatusJW02Approved:      "Your JW02 form has been approved. Application is almost complete!",
	model.StatusComplete:          "Congratulations! Your application is complete.",
	model.StatusRejected:          "Your application has been rejected.",
	model.StatusLetterPending:     "Your admission letter needs revision.",
	model.StatusJW02Pending:       "Your JW02 form needs revision. Our team is working on the updated version.",
}

// actionStatuses marks statuses where the student must act.
var actionStatuses = map[string]string{
	model.StatusDraft:             "Complete Application",
	model.StatusDocumentsVerified: "Make Payment",
}

// inProgressStatuses are the statuses counted as pending on dashboards.
var inProgressStatuses = []string{
	model.StatusSubmitted,
	model.StatusUnderReview,
	model.StatusDocumentsVerified,
	model.StatusPaymentVerified,
	model.StatusInProgress,
	model.StatusLetterUploaded,
	model.StatusLetterApproved,
	model.StatusJW02Uploaded,
	model.StatusJW02Approved,
	model.StatusLetterPending,
	model.StatusJW02Pending,
}

// Progress describes the student-facing state of one application.
type Progress struct {
	Step           int    `json:"current_step"`
	TotalSteps     int    `json:"total_steps"`
	Percent        int    `json:"progress_percent"`
	Message        string `json:"status_message"`
	ActionRequired bool   `json:"action_required"`
	ActionLabel    string `json:"action_label,omitempty"`
}

// ProgressFor computes the dashboard progress of an application.
// hasReceipt suppresses the payment action once a receipt is uploaded.
func ProgressFor(status string, hasReceipt bool) Progress {
	step, ok := statusSteps[status]
	if !ok {
		step = 0
	}
	p := Progress{
		Step:       step,
		TotalSteps: totalSteps,
		Message:    statusMessages[status],
	}
	if step >= 0 {
		p.Percent = step * 100 / totalSteps
	}
	if label, ok := actionStatuses[status]; ok {
		p.ActionRequired = true
		p.ActionLabel = label
	}
	if status == model.StatusDocumentsVerified && hasReceipt {
		p.ActionRequired = false
		p.ActionLabel = ""
		p.Message = "Payment submitted. Waiting for verification."
	}
	return p
}
