package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/extract"
)

type fakeReader struct {
	texts map[string]string
	err   error
	seen  []string
}

func (f *fakeReader) ReadText(_ context.Context, file extract.File) (string, error) {
	f.seen = append(f.seen, file.Name)
	if f.err != nil {
		return "", f.err
	}
	return f.texts[file.Name], nil
}

func img(name string) extract.File {
	return extract.File{Name: name, MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
}

func TestExtractJoinsImagesInUploadOrder(t *testing.T) {
	r := &fakeReader{texts: map[string]string{"p1": " first page ", "p2": "", "p3": "third page"}}
	svc := extract.NewService(nil, r)

	text, err := svc.Extract(context.Background(), extract.KindImages, []extract.File{img("p1"), img("p2"), img("p3")})
	require.NoError(t, err)

	assert.Equal(t, "first page\n\nthird page", text)
	assert.Equal(t, []string{"p1", "p2", "p3"}, r.seen)
}

func TestExtractPDF(t *testing.T) {
	r := &fakeReader{texts: map[string]string{"doc.pdf": "the text"}}
	svc := extract.NewService(r, nil)

	text, err := svc.Extract(context.Background(), extract.KindPDF, []extract.File{
		{Name: "doc.pdf", MIMEType: "application/pdf; charset=binary", Data: []byte("%PDF-1.7")},
	})
	require.NoError(t, err)
	assert.Equal(t, "the text", text)
}

func TestExtractRejectsBadUploads(t *testing.T) {
	pdf := extract.File{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")}

	many := make([]extract.File, extract.MaxImages+1)
	for i := range many {
		many[i] = img("p")
	}

	cases := []struct {
		name  string
		kind  extract.Kind
		files []extract.File
		msg   string
	}{
		{"unknown kind", "video", []extract.File{pdf}, "unsupported source type"},
		{"no files", extract.KindPDF, nil, "no files"},
		{"two pdfs", extract.KindPDF, []extract.File{pdf, pdf}, "exactly one pdf"},
		{"text file", extract.KindPDF, []extract.File{{Name: "a.txt", MIMEType: "text/plain", Data: []byte("x")}}, `unsupported file type "text/plain"`},
		{"pdf as image", extract.KindImages, []extract.File{pdf}, "unsupported file type"},
		{"empty file", extract.KindImages, []extract.File{{Name: "e.png", MIMEType: "image/png"}}, "is empty"},
		{"too many images", extract.KindImages, many, "at most"},
	}

	svc := extract.NewService(&fakeReader{}, &fakeReader{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Extract(context.Background(), tc.kind, tc.files)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrInputValidation))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestExtractNotConfigured(t *testing.T) {
	svc := extract.NewService(nil, &fakeReader{})

	_, err := svc.Extract(context.Background(), extract.KindPDF, []extract.File{
		{Name: "a.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInputValidation))
}

func TestExtractReaderFailure(t *testing.T) {
	svc := extract.NewService(nil, &fakeReader{err: errors.New("quota exceeded")})

	_, err := svc.Extract(context.Background(), extract.KindImages, []extract.File{img("p1")})
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrInputValidation))
	assert.True(t, strings.Contains(err.Error(), "quota exceeded"))
}

func TestNormalizeMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", extract.NormalizeMIME(" Image/JPG "))
	assert.Equal(t, "application/pdf", extract.NormalizeMIME("application/pdf; charset=binary"))
}
