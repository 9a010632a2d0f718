package models

import "time"

// ProjectExt is the only extension recognised in the projects directory.
const ProjectExt = ".md"

// FileMetadata is a lightweight description of a file in a flat directory.
type FileMetadata struct {
	Name      string    `json:"name"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Project is a Markdown note read from the projects directory.
type Project struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
