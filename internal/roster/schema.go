package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for input files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// Format names an input encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the top-level structure of a roster input file.
type File struct {
	Years []YearInput `json:"years" yaml:"years"`
}

// YearInput groups the sections of one academic year.
type YearInput struct {
	Name     string         `json:"name" yaml:"name"`
	Sections []SectionInput `json:"sections" yaml:"sections"`
}

// SectionInput lists the subjects one section needs scheduled.
type SectionInput struct {
	Name       string           `json:"name" yaml:"name"`
	Lectures   []LectureInput   `json:"lectures,omitempty" yaml:"lectures,omitempty"`
	Practicals []PracticalInput `json:"practicals,omitempty" yaml:"practicals,omitempty"`
}

// LectureInput is one lecture row of the input form.
type LectureInput struct {
	Subject string `json:"subject" yaml:"subject"`
	Teacher string `json:"teacher" yaml:"teacher"`
}

// PracticalInput is one practical row of the input form.
type PracticalInput struct {
	Subject string `json:"subject" yaml:"subject"`
	Teacher string `json:"teacher" yaml:"teacher"`
	Room    string `json:"room" yaml:"room"`
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want .yaml, .yml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads and decodes a roster file. The format follows the extension.
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode parses a roster from r.
func Decode(r io.Reader, format Format) (*File, error) {
	var file File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing roster yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing roster json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &file, nil
}

// Encode writes file in the given format. YAML is what the wizard saves.
func Encode(w io.Writer, file *File, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
