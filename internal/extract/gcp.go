package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
)

// clientOptionsFromEnv reads service account credentials given either inline
// or as a file path.
func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

type documentReader struct {
	client    *documentai.DocumentProcessorClient
	processor string
}

func newDocumentReader(ctx context.Context, cfg *config.Config) (*documentReader, error) {
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.DocumentAILocation)
	opts := append([]option.ClientOption{option.WithEndpoint(endpoint)}, clientOptionsFromEnv()...)

	c, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}
	return &documentReader{
		client: c,
		processor: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			cfg.GCPProjectID, cfg.DocumentAILocation, cfg.DocumentAIProcessorID),
	}, nil
}

func (r *documentReader) ReadText(ctx context.Context, f File) (string, error) {
	resp, err := r.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: r.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  f.Data,
				MimeType: NormalizeMIME(f.MIMEType),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("documentai ProcessDocument: %w", err)
	}
	if resp == nil || resp.Document == nil {
		return "", nil
	}
	return resp.Document.Text, nil
}

type imageReader struct {
	client *vision.ImageAnnotatorClient
}

func newImageReader(ctx context.Context) (*imageReader, error) {
	c, err := vision.NewImageAnnotatorClient(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &imageReader{client: c}, nil
}

func (r *imageReader) ReadText(ctx context.Context, f File) (string, error) {
	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: f.Data},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}

	resp, err := r.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("vision: %s", r0.Error.Message)
	}
	if r0.FullTextAnnotation == nil {
		return "", nil
	}
	return r0.FullTextAnnotation.Text, nil
}

// GCP is the Google Cloud backed extractor. Close releases both clients.
type GCP struct {
	*Service
	docs   *documentReader
	images *imageReader
}

// NewGCP connects Document AI for PDFs and Cloud Vision for images.
func NewGCP(ctx context.Context, cfg *config.Config) (*GCP, error) {
	if !cfg.ExtractionEnabled() {
		return nil, errors.New("extraction is not configured: GCP_PROJECT_ID is empty")
	}

	g := &GCP{}
	var pdf TextReader
	if cfg.DocumentAIProcessorID != "" {
		docs, err := newDocumentReader(ctx, cfg)
		if err != nil {
			return nil, err
		}
		g.docs = docs
		pdf = docs
	}

	images, err := newImageReader(ctx)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.images = images

	g.Service = NewService(pdf, images)
	return g, nil
}

func (g *GCP) Close() error {
	var errs []error
	if g.docs != nil {
		errs = append(errs, g.docs.client.Close())
	}
	if g.images != nil {
		errs = append(errs, g.images.client.Close())
	}
	return errors.Join(errs...)
}
