package formaterror

import "strings"

// FormatError maps raw storage errors to field-keyed messages the frontend can
// attach to inputs.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)

	if strings.Contains(err, "username") {
		errorMessages["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(err, "email") {
		errorMessages["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(err, "hashedPassword") || strings.Contains(err, "crypto/bcrypt") {
		errorMessages["Incorrect_password"] = "Incorrect Password"
	}
	if strings.Contains(err, "record not found") {
		errorMessages["No_record"] = "No Record Found"
	}

	if len(errorMessages) == 0 {
		errorMessages["Incorrect_details"] = "Incorrect Details"
	}
	return errorMessages
}
