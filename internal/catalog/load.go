package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Load reads the catalog from a JSON file shaped {"section": [{name, hint}]}.
// Any failure falls back to the built-in default catalog - a broken catalog
// file must never prevent the service from starting.
func Load(path string) *Catalog {
	file, err := os.Open(path)
	if err != nil {
		log.Warnf("catalog file [%s] not readable, using built-in default: %s", path, err)
		return Default()
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnf("close catalog file: %s", err)
		}
	}()

	c, err := Parse(file)
	if err != nil {
		log.Errorf("catalog file [%s] malformed, using built-in default: %s", path, err)
		return Default()
	}

	log.Debugf("catalog loaded from [%s]: %d sections, %d exercises", path, len(c.Sections), c.TotalExercises())
	return c
}

// Parse decodes a catalog from JSON, preserving the order of the section
// keys as they appear in the document. encoding/json map decoding would
// lose that order, so the top-level object is walked token by token.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", tok)
	}

	c := &Catalog{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read section name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected section key token %v", keyTok)
		}

		var exercises []Exercise
		if err := dec.Decode(&exercises); err != nil {
			return nil, fmt.Errorf("decode section [%s]: %w", name, err)
		}

		c.Sections = append(c.Sections, Section{
			Name:      name,
			Exercises: exercises,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read closing token: %w", err)
	}

	return c, nil
}
