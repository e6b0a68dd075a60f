package types

// Program is a catalog entry. The catalog is static demo content and is
// loaded from an embedded file rather than the database.
type Program struct {
	ID            string            `yaml:"id" json:"id"`
	Title         string            `yaml:"title" json:"title"`
	Description   string            `yaml:"description" json:"description"`
	Duration      string            `yaml:"duration" json:"duration"`
	Credits       int               `yaml:"credits" json:"credits"`
	Tuition       string            `yaml:"tuition" json:"tuition"`
	Format        string            `yaml:"format" json:"format"`
	Accreditation string            `yaml:"accreditation" json:"accreditation"`
	Features      []string          `yaml:"features" json:"features"`
	Careers       []ProgramCareer   `yaml:"careers" json:"careers"`
	Curriculum    []ProgramSemester `yaml:"curriculum" json:"curriculum"`
	Faculty       []ProgramFaculty  `yaml:"faculty" json:"faculty"`
}

type ProgramCareer struct {
	Title  string `yaml:"title" json:"title"`
	Salary string `yaml:"salary" json:"salary"`
}

type ProgramSemester struct {
	Semester int      `yaml:"semester" json:"semester"`
	Courses  []string `yaml:"courses" json:"courses"`
}

type ProgramFaculty struct {
	Name           string `yaml:"name" json:"name"`
	Specialization string `yaml:"specialization" json:"specialization"`
	Experience     string `yaml:"experience" json:"experience"`
}
