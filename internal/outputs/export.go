// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

// Record converts the outputs into a RunRecord with values sorted by key.
func (o *Outputs) Record(id, source string) types.RunRecord {
	rec := types.RunRecord{
		ID:        id,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Values:    make([]types.RunValue, 0, len(o.values)),
		Fulltext:  o.fulltext,
	}
	for _, k := range o.Keys() {
		v := o.values[k]
		rec.Values = append(rec.Values, types.RunValue{Key: k, Kind: v.Kind(), Value: v.Float()})
	}
	return rec
}

// MarshalRecord encodes rec as "yaml" or "json".
func MarshalRecord(rec types.RunRecord, format string) ([]byte, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(rec)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling YAML")
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Newf("unsupported export format %q", format)
	}
}

// WriteRecordYAML writes rec to path as YAML.
func WriteRecordYAML(path string, rec types.RunRecord) error {
	return writeRecord(path, rec, "yaml")
}

// WriteRecordJSON writes rec to path as indented JSON.
func WriteRecordJSON(path string, rec types.RunRecord) error {
	return writeRecord(path, rec, "json")
}

func writeRecord(path string, rec types.RunRecord, format string) error {
	data, err := MarshalRecord(rec, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// ReadRecordYAML loads a record written by WriteRecordYAML.
func ReadRecordYAML(path string) (types.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RunRecord{}, errors.Wrapf(err, "reading %s", path)
	}
	var rec types.RunRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return types.RunRecord{}, errors.Wrapf(err, "parsing %s", path)
	}
	return rec, nil
}
