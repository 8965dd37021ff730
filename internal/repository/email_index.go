package repository

import (
	"github.com/noah-isme/ecole-manager/internal/codec"
)

// EmailIndex answers "is this address already taken?" by scanning the student
// and teacher files directly. It deliberately bypasses the in-memory stores:
// the answer is only consistent with on-disk state, so callers must save any
// pending changes first.
type EmailIndex struct {
	students textStore
	teachers textStore
}

// NewEmailIndex creates an index over the data directory.
func NewEmailIndex(dataDir string) *EmailIndex {
	return &EmailIndex{
		students: newTextStore(dataDir, studentsFile),
		teachers: newTextStore(dataDir, teachersFile),
	}
}

// Exists reports whether the address appears in either backing file.
func (x *EmailIndex) Exists(email string) (bool, error) {
	lines, _, err := x.students.readLines()
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if codec.DecodeStudent(line).Email == email {
			return true, nil
		}
	}

	lines, _, err = x.teachers.readLines()
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if codec.DecodeTeacher(line).Email == email {
			return true, nil
		}
	}
	return false, nil
}
