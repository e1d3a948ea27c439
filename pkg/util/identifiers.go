package util

import "regexp"

// Format patterns for the identifiers collected during seller onboarding.
// Only the shape is checked here; no registry lookups are performed.
var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	aadhaarPattern = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	gstinPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// IsValidPAN reports whether s is a well-formed permanent account number
func IsValidPAN(s string) bool {
	return panPattern.MatchString(s)
}

// IsValidIFSC reports whether s is a well-formed bank branch code
func IsValidIFSC(s string) bool {
	return ifscPattern.MatchString(s)
}

// IsValidAadhaar reports whether s is a well-formed 12-digit Aadhaar number.
// Aadhaar numbers never start with 0 or 1.
func IsValidAadhaar(s string) bool {
	return aadhaarPattern.MatchString(s)
}

// IsValidGSTIN reports whether s is a well-formed GST identification number
func IsValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// IsValidPincode reports whether s is a well-formed 6-digit postal code
func IsValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}
