package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mrsinham/pathway/internal/diagnosis"
	"github.com/mrsinham/pathway/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestShareRequiresFinalize(t *testing.T) {
	r := New(now)

	_, err := r.Share(MethodEmail)
	assert.ErrorIs(t, err, ErrNotFinalized)
	_, err = r.CopyLink(&fakeClipboard{})
	assert.ErrorIs(t, err, ErrNotFinalized)

	toast := r.Finalize()
	assert.Equal(t, "Report successfully finalized", toast.Title)
	assert.Equal(t, "Your patient analysis is ready to share", toast.Description)
	assert.True(t, r.Finalized)
}

func TestShareMethods(t *testing.T) {
	r := New(now)
	r.Finalize()

	for _, m := range Methods() {
		toast, err := r.Share(m)
		require.NoError(t, err)
		assert.Equal(t, "Shared via "+string(m), toast.Title)
		assert.Equal(t, "Recipients will receive secure access", toast.Description)
	}
}

func TestCopyLink(t *testing.T) {
	r := New(now)
	r.Finalize()

	cb := &fakeClipboard{}
	toast, err := r.CopyLink(cb)
	require.NoError(t, err)
	assert.Equal(t, "Link copied to clipboard", toast.Title)
	assert.Equal(t, "Share securely with authorized personnel", toast.Description)
	assert.Equal(t, r.Link(), cb.text)
	assert.True(t, strings.HasPrefix(cb.text, LinkScheme))
	assert.Len(t, strings.TrimPrefix(cb.text, LinkScheme), 26)
}

func TestCopyLinkClipboardFailure(t *testing.T) {
	r := New(now)
	r.Finalize()

	toast, err := r.CopyLink(&fakeClipboard{err: errors.New("no display")})
	require.NoError(t, err)
	assert.Contains(t, toast.Description, "no display")
	assert.Contains(t, toast.Description, r.Link())
}

func TestIDsAreUniqueAndTimeOrdered(t *testing.T) {
	a := New(now)
	b := New(now.Add(time.Second))
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID.String(), b.ID.String())
}

func TestMarkdown(t *testing.T) {
	r := New(now)
	r.Patient = "DUPONT^Marie"
	r.Documents = scan.Placeholder().Documents
	r.Notes = []string{"lesion in left lobe"}
	r.Diagnosis = diagnosis.Diagnosis{Primary: "Pneumonia"}
	r.Plan = diagnosis.Plan{Treatment: "Antibiotics", Duration: "2 weeks"}

	md := r.Markdown(now.Add(time.Hour))
	assert.Contains(t, md, "# Patient Analysis Report")
	assert.Contains(t, md, "Draft")
	assert.Contains(t, md, "DUPONT^Marie")
	assert.Contains(t, md, "Patient_Records.pdf")
	assert.Contains(t, md, "lesion in left lobe")
	assert.Contains(t, md, "**Primary:** Pneumonia")
	assert.Contains(t, md, "**Start:** _not provided_")
	assert.Contains(t, md, "1 hour ago")
	assert.NotContains(t, md, "## Observations")

	r.Finalize()
	assert.Contains(t, r.Markdown(now), "Finalized")
}
