package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pdfHeader = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectContentType(pdfHeader))
	assert.True(t, strings.HasPrefix(DetectContentType([]byte("plain words")), "text/plain"))
}

func TestObjectName(t *testing.T) {
	name := ObjectName("resumes", "Alice CV.PDF", pdfHeader)
	assert.True(t, strings.HasPrefix(name, "resumes/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	derived := ObjectName("resumes", "blob", pdfHeader)
	assert.True(t, strings.HasSuffix(derived, ".pdf"))

	assert.NotEqual(t, ObjectName("resumes", "a.pdf", nil), ObjectName("resumes", "a.pdf", nil))
}

func TestPublicURLEscapesSegments(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/hireflow-cv/resumes/a%20b.pdf",
		PublicURL("hireflow-cv", "resumes/a b.pdf"))
}

func TestCacheControlFollowsVisibility(t *testing.T) {
	assert.Equal(t, "public, max-age=3600", cacheControl(true))
	assert.Equal(t, "private, max-age=0", cacheControl(false))
}
