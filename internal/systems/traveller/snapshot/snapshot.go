// Package snapshot serializes a career run so a host can persist it and
// resume it later.
//
// A Record carries the character together with the dice state of its run.
// JSON is the canonical form. YAML is produced from the JSON form so both
// share one set of field names; CBOR uses deterministic encoding with the
// same names.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/servicerecord/internal/core/dice"
	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
)

// Version is the record layout written by this package.
const Version = 1

// Format names a snapshot encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"
)

var (
	// ErrInvalid indicates a record that decodes but breaks an invariant.
	ErrInvalid = apperrors.New(apperrors.CodeSnapshotInvalid, "snapshot is invalid")
	// ErrUnknownFormat indicates an encoding other than json, yaml or cbor.
	ErrUnknownFormat = apperrors.New(apperrors.CodeSnapshotFormatUnknown, "unknown snapshot format")
	// ErrUnknownVersion indicates a record written by an incompatible layout.
	ErrUnknownVersion = apperrors.New(apperrors.CodeSnapshotVersionUnknown, "unknown snapshot version")
)

// Formats returns the supported encodings.
func Formats() []Format {
	return []Format{JSON, YAML, CBOR}
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Formats() {
		if normalized == f {
			return f, nil
		}
	}
	return "", apperrors.WithMetadata(apperrors.CodeSnapshotFormatUnknown,
		fmt.Sprintf("unknown snapshot format %q", name),
		map[string]string{"Format": name})
}

// Record is one persisted run.
type Record struct {
	Version   int              `json:"version"`
	ID        string           `json:"id"`
	Character domain.Character `json:"character"`
	Dice      dice.State       `json:"dice"`
}

// New returns a current-version record.
func New(id string, ch domain.Character, state dice.State) Record {
	return Record{Version: Version, ID: id, Character: ch, Dice: state}
}

// Validate checks the record version and the character invariants.
func (r Record) Validate() error {
	if r.Version != Version {
		return apperrors.WithMetadata(apperrors.CodeSnapshotVersionUnknown,
			fmt.Sprintf("snapshot version %d, want %d", r.Version, Version),
			map[string]string{"Version": fmt.Sprint(r.Version)})
	}
	if strings.TrimSpace(r.ID) == "" {
		return apperrors.Wrap(apperrors.CodeSnapshotInvalid, "snapshot is invalid", fmt.Errorf("id is required"))
	}
	return r.Character.Validate()
}

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	var err error
	cborEnc, err = encOptions.EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode validates record and serializes it in format.
func Encode(record Record, format Format) ([]byte, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	switch format {
	case JSON:
		return json.MarshalIndent(record, "", "  ")
	case YAML:
		return encodeYAML(record)
	case CBOR:
		return cborEnc.Marshal(record)
	default:
		return nil, unknownFormat(format)
	}
}

// Decode parses data in format and validates the result.
func Decode(data []byte, format Format) (Record, error) {
	var record Record
	var err error
	switch format {
	case JSON:
		err = decodeJSON(data, &record)
	case YAML:
		err = decodeYAML(data, &record)
	case CBOR:
		err = cborDec.Unmarshal(data, &record)
	default:
		return Record{}, unknownFormat(format)
	}
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.CodeSnapshotInvalid, "decode snapshot", err)
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

func unknownFormat(format Format) error {
	return apperrors.WithMetadata(apperrors.CodeSnapshotFormatUnknown,
		fmt.Sprintf("unknown snapshot format %q", format),
		map[string]string{"Format": string(format)})
}

func decodeJSON(data []byte, record *Record) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(record)
}

// encodeYAML renders the JSON form as YAML so both formats share field names.
func encodeYAML(record Record) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	doc = plainNumbers(doc)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// plainNumbers swaps json.Number leaves for int64 or float64 so YAML emits
// them unquoted. Integers stay exact, which matters for 64-bit seeds.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = plainNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = plainNumbers(e)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

func decodeYAML(data []byte, record *Record) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return decodeJSON(raw, record)
}
