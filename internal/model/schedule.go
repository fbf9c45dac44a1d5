package model

// Default subject codes offered by the add/edit prompts. Any string is a valid subject.
const (
	SubjectMath        = "MATH"
	SubjectPhysics     = "PHYS"
	SubjectRussian     = "RUS"
	SubjectInformatics = "INF"
	SubjectEnglish     = "ENG"
)

// DefaultSubjects lists the suggested subject codes
func DefaultSubjects() []string {
	return []string{SubjectMath, SubjectPhysics, SubjectRussian, SubjectInformatics, SubjectEnglish}
}

var defaultSchedule = []Task{
	{ID: 1, Date: "2025-06-02", Subject: SubjectMath, Text: "Algebra: quadratic equations and inequalities"},
	{ID: 2, Date: "2025-06-02", Subject: SubjectRussian, Text: "Orthography: prefixes and roots"},
	{ID: 3, Date: "2025-06-03", Subject: SubjectPhysics, Text: "Kinematics: uniform acceleration problems"},
	{ID: 4, Date: "2025-06-03", Subject: SubjectMath, Text: "Trigonometry: identities and equations"},
	{ID: 5, Date: "2025-06-04", Subject: SubjectInformatics, Text: "Number systems and logic expressions"},
	{ID: 6, Date: "2025-06-04", Subject: SubjectEnglish, Text: "Reading: two past-paper passages"},
	{ID: 7, Date: "2025-06-05", Subject: SubjectMath, Text: "Planimetry: triangles and circles"},
	{ID: 8, Date: "2025-06-05", Subject: SubjectPhysics, Text: "Dynamics: Newton's laws"},
	{ID: 9, Date: "2025-06-06", Subject: SubjectRussian, Text: "Essay: argument structure drill"},
	{ID: 10, Date: "2025-06-06", Subject: SubjectInformatics, Text: "Algorithms: loops and arrays"},
	{ID: 11, Date: "2025-06-07", Subject: SubjectMath, Text: "Full mock exam, timed"},
	{ID: 12, Date: "2025-06-08", Subject: SubjectPhysics, Text: "Review mistakes from the week"},
}

// DefaultSchedule returns a fresh copy of the built-in schedule seeded on first run
func DefaultSchedule() []Task {
	return CloneTasks(defaultSchedule)
}
