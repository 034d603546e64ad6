// Package scan implements the Scan & Detect phase: it classifies the
// documents handed to the analyzer and pulls patient details out of DICOM
// headers.
package scan

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/pathway/internal/debug"
	"github.com/mrsinham/pathway/internal/dicom"
	"github.com/spf13/afero"
)

// SupportedFormats is shown under the upload button.
const SupportedFormats = "PDF, JPEG, DICOM"

// Format is a detected document type.
type Format string

const (
	FormatPDF   Format = "PDF"
	FormatJPEG  Format = "JPEG"
	FormatDICOM Format = "DICOM"
)

// dicomMagicOffset is where "DICM" follows the 128-byte preamble.
const dicomMagicOffset = 128

// sniffLen is how many leading bytes DetectFormat needs.
const sniffLen = dicomMagicOffset + 4

// DetectFormat classifies a document from its leading bytes.
func DetectFormat(head []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(head, []byte("%PDF")):
		return FormatPDF, true
	case bytes.HasPrefix(head, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG, true
	case len(head) >= sniffLen && string(head[dicomMagicOffset:sniffLen]) == "DICM":
		return FormatDICOM, true
	}
	return "", false
}

// Document is one analyzed input.
type Document struct {
	Name   string
	Path   string
	Format Format
	Size   int64
	// Header is set for DICOM documents whose header could be read.
	Header *dicom.Header
}

// SizeLabel returns the document size in human form, e.g. "1.2 MB".
func (d Document) SizeLabel() string {
	return humanize.Bytes(uint64(d.Size))
}

// Describe returns a one-line description for the documents list.
func (d Document) Describe() string {
	if d.Header != nil && d.Header.PatientName != "" {
		return fmt.Sprintf("%s · %s · %s", d.Format, dicom.ModalityLabel(d.Header.Modality), d.Header.PatientName)
	}
	if d.Size > 0 {
		return fmt.Sprintf("%s · %s", d.Format, d.SizeLabel())
	}
	return string(d.Format)
}

// Skipped is an input that could not be analyzed.
type Skipped struct {
	Path   string
	Reason string
}

// Result is the outcome of the Scan & Detect phase.
type Result struct {
	Documents []Document
	Skipped   []Skipped
	// Placeholder is true when no inputs were given and the canned
	// demonstration result is shown.
	Placeholder bool
}

// Summary is the headline under "Data Processed".
func (r Result) Summary() string {
	n := len(r.Documents)
	if n == 1 {
		return "1 document successfully analyzed"
	}
	return fmt.Sprintf("%d documents successfully analyzed", n)
}

// Headline returns the document shown first in the result panel.
func (r Result) Headline() (Document, bool) {
	if len(r.Documents) == 0 {
		return Document{}, false
	}
	return r.Documents[0], true
}

// Patient returns the first patient name found in a DICOM header.
func (r Result) Patient() string {
	for _, d := range r.Documents {
		if d.Header != nil && d.Header.PatientName != "" {
			return d.Header.PatientName
		}
	}
	return ""
}

// Placeholder returns the demonstration result used when the user starts the
// analysis without supplying any files.
func Placeholder() Result {
	return Result{
		Placeholder: true,
		Documents: []Document{
			{Name: "Patient_Records.pdf", Format: FormatPDF},
			{Name: "Chest_XRay.jpg", Format: FormatJPEG},
			{Name: "Brain_MR.dcm", Format: FormatDICOM},
		},
	}
}

// Detect analyzes every file in paths; directories are walked. Unreadable
// or unsupported files are reported in Result.Skipped and never abort the
// scan. With no paths, Detect returns Placeholder().
func Detect(fs afero.Fs, paths []string) Result {
	if len(paths) == 0 {
		return Placeholder()
	}

	var files []string
	var res Result
	for _, p := range paths {
		info, err := fs.Stat(p)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Path: p, Reason: "not found"})
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		_ = afero.Walk(fs, p, func(path string, fi os.FileInfo, err error) error {
			if err == nil && !fi.IsDir() {
				files = append(files, path)
			}
			return nil
		})
	}
	sort.Strings(files)

	for _, path := range files {
		doc, err := inspect(fs, path)
		if err != nil {
			debug.Logf("scan: skip %s: %v", path, err)
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: err.Error()})
			continue
		}
		res.Documents = append(res.Documents, doc)
	}

	return res
}

func inspect(fs afero.Fs, path string) (Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return Document{}, fmt.Errorf("stat: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Document{}, fmt.Errorf("read: %w", err)
	}

	format, ok := DetectFormat(head[:n])
	if !ok {
		return Document{}, fmt.Errorf("unsupported format")
	}

	doc := Document{
		Name:   filepath.Base(path),
		Path:   path,
		Format: format,
		Size:   info.Size(),
	}

	if format == FormatDICOM {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return Document{}, fmt.Errorf("seek: %w", err)
		}
		hdr, err := dicom.ReadHeader(f, info.Size())
		if err != nil {
			// still a DICOM document, just without readable details
			debug.Logf("scan: %s header: %v", path, err)
		} else {
			doc.Header = &hdr
		}
	}

	return doc, nil
}
