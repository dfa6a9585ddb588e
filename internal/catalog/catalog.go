// Package catalog holds the static exercise catalog: an ordered set of
// sections, each with an ordered list of exercises. The catalog is loaded
// once at startup and never changes afterwards; an exercise is identified
// by its section name and position within it.
package catalog

import "fmt"

type Exercise struct {
	Name string `json:"name"`
	Hint string `json:"hint"`
}

type Section struct {
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Catalog is an ordered list of sections. Section order and per-section
// exercise order are stable identifiers, so reordering a loaded catalog
// would silently re-map all historical checks.
type Catalog struct {
	Sections []Section `json:"sections"`
}

// ExerciseID returns the stable identifier of an exercise: "{section}_{index}".
func ExerciseID(section string, index int) string {
	return fmt.Sprintf("%s_%d", section, index)
}

func (c *Catalog) Section(name string) (Section, bool) {
	for _, sec := range c.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

func (c *Catalog) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for _, sec := range c.Sections {
		names = append(names, sec.Name)
	}
	return names
}

// TotalExercises is the number of exercises across all sections.
func (c *Catalog) TotalExercises() int {
	total := 0
	for _, sec := range c.Sections {
		total += len(sec.Exercises)
	}
	return total
}
