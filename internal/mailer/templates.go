package mailer

import "fmt"

// Welcome returns the subject and body for a freshly created account,
// including the generated password the user must change on first login.
func Welcome(fullName, username, password string) (string, string) {
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>An account has been created for you on CareHub.</p>
<p>Username: <b>%s</b><br/>Temporary password: <b>%s</b></p>
<p>Please sign in and change your password as soon as possible.</p>
<p>CareHub Team</p>
</body></html>`, fullName, username, password)
	return "Welcome to CareHub", body
}

// PasswordReset returns the subject and body carrying a newly
// generated password.
func PasswordReset(fullName, password string) (string, string) {
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Your CareHub password has been reset.</p>
<p>New password: <b>%s</b></p>
<p>Please sign in and change it as soon as possible. If you did not request this reset, contact your administrator.</p>
<p>CareHub Team</p>
</body></html>`, fullName, password)
	return "Your CareHub password was reset", body
}

// RequestResolved notifies a staff member that one of their requests
// (leave, grocery, incident, utility) changed status.
func RequestResolved(fullName, requestKind, status, note string) (string, string) {
	extra := ""
	if note != "" {
		extra = fmt.Sprintf("<p>Note: %s</p>", note)
	}
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Your %s request has been <b>%s</b>.</p>
%s
<p>CareHub Team</p>
</body></html>`, fullName, requestKind, status, extra)
	return fmt.Sprintf("Your %s request was %s", requestKind, status), body
}

// RecordReviewed notifies a care giver that a record they filed was
// approved or declined by a reviewer.
func RecordReviewed(fullName, recordKind, patientName, status, reason string) (string, string) {
	extra := ""
	if reason != "" {
		extra = fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>The %s you filed for %s has been <b>%s</b>.</p>
%s
<p>CareHub Team</p>
</body></html>`, fullName, recordKind, patientName, status, extra)
	return fmt.Sprintf("%s %s", recordKind, status), body
}

// Birthday returns a greeting sent to staff on their birthday.
func Birthday(fullName string) (string, string) {
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Happy birthday! The whole CareHub team wishes you a wonderful day.</p>
<p>CareHub Team</p>
</body></html>`, fullName)
	return "Happy Birthday!", body
}

// AssessmentDue reminds an administrator that a resident's assessment
// or care-plan review is coming up.
func AssessmentDue(adminName, residentName, kind, dueDate string) (string, string) {
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>The %s for resident <b>%s</b> is due on <b>%s</b>.</p>
<p>Please make sure it is scheduled in time.</p>
<p>CareHub Team</p>
</body></html>`, adminName, kind, residentName, dueDate)
	return fmt.Sprintf("Upcoming %s for %s", kind, residentName), body
}

// AccountStatusChanged notifies a user that their account was blocked
// or re-activated.
func AccountStatusChanged(fullName, status string) (string, string) {
	body := fmt.Sprintf(`<html><body>
<p>Dear %s,</p>
<p>Your CareHub account status has changed to <b>%s</b>.</p>
<p>If you believe this is a mistake, contact your administrator.</p>
<p>CareHub Team</p>
</body></html>`, fullName, status)
	return "Your CareHub account status changed", body
}
