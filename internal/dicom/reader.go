// Package dicom reads just enough of a DICOM file to describe it in the Scan
// & Detect phase, and writes small demo studies for trying the pathway out.
package dicom

import (
	"fmt"
	"io"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Header is the subset of DICOM attributes shown for a detected file.
type Header struct {
	PatientName      string
	PatientID        string
	Modality         string
	StudyDescription string
	StudyDate        string
}

// modalityLabels names the modality codes the analyzer knows about.
var modalityLabels = map[string]string{
	"MR": "Magnetic Resonance",
	"CT": "Computed Tomography",
	"CR": "Computed Radiography",
	"DX": "Digital X-Ray",
	"US": "Ultrasound",
	"MG": "Mammography",
}

// ModalityLabel returns a readable name for a modality code, or the code
// itself when unknown.
func ModalityLabel(code string) string {
	if label, ok := modalityLabels[strings.ToUpper(code)]; ok {
		return label
	}
	return code
}

// ReadHeader parses the DICOM stream in r without its pixel data and
// extracts the attributes in Header. Missing attributes are left empty.
func ReadHeader(r io.Reader, size int64) (Header, error) {
	ds, err := dicom.Parse(r, size, nil, dicom.SkipPixelData())
	if err != nil {
		return Header{}, fmt.Errorf("parse dicom: %w", err)
	}

	return Header{
		PatientName:      stringValue(ds, tag.PatientName),
		PatientID:        stringValue(ds, tag.PatientID),
		Modality:         stringValue(ds, tag.Modality),
		StudyDescription: stringValue(ds, tag.StudyDescription),
		StudyDate:        stringValue(ds, tag.StudyDate),
	}, nil
}

func stringValue(ds dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil {
		return ""
	}
	values, ok := elem.Value.GetValue().([]string)
	if !ok || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.Join(values, "\\"))
}
