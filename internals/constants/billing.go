package constants

import "fmt"

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "❌ Hanya staff billing atau admin yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Roles
// ==========================
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ==========================
// Program bantuan pemerintah yang dikenal
// ==========================
const (
	ProgramBPJSKesehatan = "bpjs_kesehatan"
	ProgramJamkesda      = "jamkesda"
	ProgramKIS           = "kis"
	ProgramOther         = "other"
)

var KnownFundingPrograms = []string{
	ProgramBPJSKesehatan,
	ProgramJamkesda,
	ProgramKIS,
	ProgramOther,
}

func IsKnownFundingProgram(p string) bool {
	for _, known := range KnownFundingPrograms {
		if p == known {
			return true
		}
	}
	return false
}
