package io

import (
	stderrors "errors"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

// ReadTOML decodes a dataset written as
//
//	title = "Fruit"
//
//	[[points]]
//	label = "apples"
//	value = 5
func ReadTOML(r io.Reader) (chart.Dataset, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "unknown toml key %q", undecoded[0].String())
	}
	return toDataset(doc.Title, doc.Points)
}

// ReadYAML decodes a dataset with the same keys as the TOML form. An empty
// document yields an empty dataset.
func ReadYAML(r io.Reader) (chart.Dataset, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return toDataset(doc.Title, doc.Points)
}
