package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizgen-lambda/internal/apperr"
	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

type Kind string

const (
	KindPDF    Kind = "pdf"
	KindImages Kind = "images"
)

// MaxImages bounds the pages of one image upload.
const MaxImages = 20

var allowedTypes = map[Kind]map[string]bool{
	KindPDF: {"application/pdf": true},
	KindImages: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/heic": true,
	},
}

type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Extractor turns uploaded files into plain text.
type Extractor interface {
	Extract(ctx context.Context, kind Kind, files []File) (string, error)
}

// TextReader reads the text of a single file.
type TextReader interface {
	ReadText(ctx context.Context, f File) (string, error)
}

type Service struct {
	pdf    TextReader
	images TextReader
}

func NewService(pdf, images TextReader) *Service {
	return &Service{pdf: pdf, images: images}
}

// Extract checks the upload and returns the text of all files joined in
// upload order.
func (s *Service) Extract(ctx context.Context, kind Kind, files []File) (string, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"kind": kind, "files": len(files)})

	if err := Check(kind, files); err != nil {
		return "", err
	}

	reader := s.pdf
	if kind == KindImages {
		reader = s.images
	}
	if reader == nil {
		return "", apperr.Input("%s extraction is not configured", kind)
	}

	parts := make([]string, 0, len(files))
	for i, f := range files {
		text, err := reader.ReadText(ctx, f)
		if err != nil {
			log.WithError(err).WithField("file", f.Name).Error("Text extraction failed")
			return "", fmt.Errorf("failed to extract text from file %d (%s): %w", i+1, f.Name, err)
		}
		if t := strings.TrimSpace(text); t != "" {
			parts = append(parts, t)
		}
	}

	out := strings.Join(parts, "\n\n")
	log.WithField("chars", len(out)).Info("Text extracted")
	return out, nil
}

// Check validates the kind, the file count and every MIME type.
func Check(kind Kind, files []File) error {
	types, ok := allowedTypes[kind]
	if !ok {
		return apperr.Input("unsupported source type %q", kind)
	}
	if len(files) == 0 {
		return apperr.Input("no files uploaded")
	}
	if kind == KindPDF && len(files) != 1 {
		return apperr.Input("exactly one pdf file is expected, got %d", len(files))
	}
	if kind == KindImages && len(files) > MaxImages {
		return apperr.Input("at most %d images are allowed, got %d", MaxImages, len(files))
	}

	for _, f := range files {
		mt := NormalizeMIME(f.MIMEType)
		if !types[mt] {
			return apperr.Input("unsupported file type %q", mt)
		}
		if len(f.Data) == 0 {
			return apperr.Input("file %q is empty", f.Name)
		}
	}
	return nil
}

// NormalizeMIME drops parameters and lowercases a content type.
func NormalizeMIME(mt string) string {
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	mt = strings.ToLower(strings.TrimSpace(mt))
	if mt == "image/jpg" {
		return "image/jpeg"
	}
	return mt
}
