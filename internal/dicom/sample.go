package dicom

import (
	"fmt"
	"image/jpeg"
	"math"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/mrsinham/pathway/internal/util"
	"github.com/spf13/afero"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	mrImageStorage   = "1.2.840.10008.5.1.4.1.1.4"
	explicitVRLittle = "1.2.840.10008.1.2.1"
	uidRoot          = "1.2.826.0.1.3680043.8.498"

	// PlaceholderPDF is the document name the scan phase headlines.
	PlaceholderPDF = "Patient_Records.pdf"
	// PreviewJPEG is the JPEG rendering of the first slice.
	PreviewJPEG = "Scan_Preview.jpg"
)

// SampleOptions controls demo study generation.
type SampleOptions struct {
	Dir    string
	Images int
	Size   int // square image edge in pixels
	Seed   uint64
	Now    func() time.Time
}

// Sample describes what WriteSample produced.
type Sample struct {
	Patient util.Patient
	Files   []string
}

// WriteSample writes a small MR study for one generated patient into
// opts.Dir: opts.Images DICOM slices stamped "File X/Y", a JPEG preview of
// the first slice and a placeholder patient-records PDF.
func WriteSample(fs afero.Fs, opts SampleOptions) (Sample, error) {
	if opts.Images <= 0 {
		return Sample{}, fmt.Errorf("images must be > 0, got %d", opts.Images)
	}
	if opts.Size <= 0 {
		opts.Size = 128
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(opts.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	if err := fs.MkdirAll(opts.Dir, 0o755); err != nil {
		return Sample{}, fmt.Errorf("create sample dir: %w", err)
	}

	patient := util.GeneratePatient(0, rng)
	studyUID := newUID(rng)
	seriesUID := newUID(rng)
	studyDate := opts.Now().Format("20060102")

	out := Sample{Patient: patient}
	var firstSlice *frame.NativeFrame[uint16]

	for i := 0; i < opts.Images; i++ {
		nativeFrame := syntheticSlice(opts.Size, rng)
		drawTextOnFrame16(nativeFrame, opts.Size, opts.Size, fmt.Sprintf("File %d/%d", i+1, opts.Images))
		if i == 0 {
			firstSlice = nativeFrame
		}

		sopInstanceUID := newUID(rng)
		elements := []*dicom.Element{
			mustNewElement(tag.TransferSyntaxUID, []string{explicitVRLittle}),
			mustNewElement(tag.MediaStorageSOPClassUID, []string{mrImageStorage}),
			mustNewElement(tag.MediaStorageSOPInstanceUID, []string{sopInstanceUID}),
			mustNewElement(tag.SOPClassUID, []string{mrImageStorage}),
			mustNewElement(tag.SOPInstanceUID, []string{sopInstanceUID}),
			mustNewElement(tag.PatientName, []string{patient.Name}),
			mustNewElement(tag.PatientID, []string{patient.ID}),
			mustNewElement(tag.PatientBirthDate, []string{patient.BirthDate}),
			mustNewElement(tag.PatientSex, []string{patient.Sex}),
			mustNewElement(tag.StudyInstanceUID, []string{studyUID}),
			mustNewElement(tag.StudyDate, []string{studyDate}),
			mustNewElement(tag.StudyDescription, []string{"BRAIN MR"}),
			mustNewElement(tag.SeriesInstanceUID, []string{seriesUID}),
			mustNewElement(tag.SeriesNumber, []string{"1"}),
			mustNewElement(tag.Modality, []string{"MR"}),
			mustNewElement(tag.InstanceNumber, []string{fmt.Sprintf("%d", i+1)}),
			mustNewElement(tag.Rows, []int{opts.Size}),
			mustNewElement(tag.Columns, []int{opts.Size}),
			mustNewElement(tag.BitsAllocated, []int{16}),
			mustNewElement(tag.BitsStored, []int{16}),
			mustNewElement(tag.HighBit, []int{15}),
			mustNewElement(tag.PixelRepresentation, []int{0}),
			mustNewElement(tag.SamplesPerPixel, []int{1}),
			mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
			mustNewElement(tag.PixelData, dicom.PixelDataInfo{
				Frames: []*frame.Frame{{Encapsulated: false, NativeData: nativeFrame}},
			}),
		}

		path := filepath.Join(opts.Dir, fmt.Sprintf("IM%06d.dcm", i+1))
		if err := writeDataset(fs, path, dicom.Dataset{Elements: elements}); err != nil {
			return out, fmt.Errorf("write %s: %w", path, err)
		}
		out.Files = append(out.Files, path)
	}

	previewPath := filepath.Join(opts.Dir, PreviewJPEG)
	if err := writePreview(fs, previewPath, firstSlice, opts.Size); err != nil {
		return out, fmt.Errorf("write preview: %w", err)
	}
	out.Files = append(out.Files, previewPath)

	pdfPath := filepath.Join(opts.Dir, PlaceholderPDF)
	if err := afero.WriteFile(fs, pdfPath, placeholderPDF(patient), 0o644); err != nil {
		return out, fmt.Errorf("write %s: %w", pdfPath, err)
	}
	out.Files = append(out.Files, pdfPath)

	return out, nil
}

// syntheticSlice fills a frame with a radial gradient plus noise.
func syntheticSlice(size int, rng *rand.Rand) *frame.NativeFrame[uint16] {
	nativeFrame := frame.NewNativeFrame[uint16](16, size, size, size*size, 1)
	center := float64(size) / 2
	maxDist := math.Sqrt(2 * center * center)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			intensity := (1 - math.Sqrt(dx*dx+dy*dy)/maxDist) * 40000
			intensity += (rng.Float64() - 0.5) * 8000
			nativeFrame.RawData[y*size+x] = uint16(math.Max(0, math.Min(65535, intensity)))
		}
	}
	return nativeFrame
}

func writeDataset(fs afero.Fs, path string, ds dicom.Dataset) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds)
}

func writePreview(fs afero.Fs, path string, nativeFrame *frame.NativeFrame[uint16], size int) error {
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return jpeg.Encode(f, frameImage(nativeFrame, size, size), &jpeg.Options{Quality: 85})
}

// placeholderPDF returns a minimal one-page PDF naming the patient.
func placeholderPDF(p util.Patient) []byte {
	return []byte(fmt.Sprintf("%%PDF-1.4\n%% Patient records for %s (%s)\n"+
		"1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n"+
		"2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n"+
		"3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >> endobj\n"+
		"trailer << /Root 1 0 R >>\n%%%%EOF\n", p.Name, p.ID))
}

func newUID(rng *rand.Rand) string {
	return fmt.Sprintf("%s.%d.%d", uidRoot, rng.Uint32(), rng.Uint32())
}

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}
