package models

// Branches lists the department codes students and teachers register under.
// Teachers may additionally belong to the examination cell or administration.
var Branches = []string{"ECE", "CSE", "EEE", "CIVIL", "MECH", "DS", "AIML"}

// TeacherBranches extends Branches with the non-academic units.
var TeacherBranches = append(append([]string{}, Branches...), "EXAMINATION", "ADMIN")

// Sections within a branch/semester cohort.
var Sections = []string{"A", "B", "C"}

// TeacherRoles maps a staff category to the role titles available under it.
var TeacherRoles = map[string][]string{
	"Teaching Staff": {
		"Professor", "Associate Professor", "Assistant Professor",
		"Lecturer", "Visiting Faculty", "Temporary Faculty",
	},
	"Technical Staff": {
		"Lab Technician", "Lab Assistant", "System Administrator", "Workshop Instructor",
	},
	"Key Administrative & Specialized Faculty": {
		"Principal", "Dean - Academics", "Training & Placement Officer (TPO)",
		"Librarian", "Assistant Librarian", "Physical Director", "Class Advisor/Mentor",
	},
	"Support Administrative Staff": {
		"Administrative Officer (AO)", "Accounts Officer/Clerk",
		"Office Assistant", "Maintenance Supervisor",
	},
	"Examination Cell": {
		"Controller of Examinations (CoE)", "Examination In-charge",
		"Clerk/Examination Assistant", "Data Entry Operator", "Frisking Staff",
	},
}

// ValidBranch reports whether code is a known student branch.
func ValidBranch(code string) bool {
	for _, b := range Branches {
		if b == code {
			return true
		}
	}
	return false
}

// ValidTeacherBranch reports whether code is a known teacher unit.
func ValidTeacherBranch(code string) bool {
	for _, b := range TeacherBranches {
		if b == code {
			return true
		}
	}
	return false
}

// ValidSection reports whether s is a known section letter.
func ValidSection(s string) bool {
	for _, sec := range Sections {
		if sec == s {
			return true
		}
	}
	return false
}
