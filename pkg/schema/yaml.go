package schema

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type entityFile struct {
	Entities []struct {
		Name    string   `yaml:"name"`
		Table   string   `yaml:"table"`
		Columns []Column `yaml:"columns"`
	} `yaml:"entities"`
}

// LoadYAML decodes entity definitions from a YAML document, e.g.:
//
//	entities:
//	  - name: post
//	    table: posts
//	    columns:
//	      - { field: id, primary: true }
//	      - { field: title }
//	      - { field: counters.likes, name: likes }
func LoadYAML(r io.Reader) ([]*Entity, error) {
	var doc entityFile
	if err := yaml.NewDecoder(r).Decode(&doc); errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to parse entities: %w", err)
	}

	ents := make([]*Entity, 0, len(doc.Entities))
	for _, def := range doc.Entities {
		e, err := NewEntity(def.Name, def.Table, def.Columns...)
		if err != nil {
			return nil, err
		}
		ents = append(ents, e)
	}
	return ents, nil
}
