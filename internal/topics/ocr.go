package topics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/socratai/socratai/internal/logger"
)

// TextReader recovers the text of an uploaded syllabus.
type TextReader interface {
	ReadText(ctx context.Context, content []byte, mimeType string) (string, error)
	Close() error
}

const visionTimeout = 60 * time.Second

type annotateFunc func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)

// VisionReader runs Google Cloud Vision document text detection.
type VisionReader struct {
	client   *vision.ImageAnnotatorClient
	annotate annotateFunc
	log      *logger.Logger
}

// NewVisionReader connects with credentials from
// GOOGLE_APPLICATION_CREDENTIALS_JSON (inline) or
// GOOGLE_APPLICATION_CREDENTIALS (path), falling back to the ambient
// application default credentials.
func NewVisionReader(ctx context.Context, log *logger.Logger) (*VisionReader, error) {
	if log == nil {
		log = logger.Nop()
	}
	client, err := vision.NewImageAnnotatorClient(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionReader{
		client: client,
		annotate: func(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
			return client.BatchAnnotateImages(ctx, req)
		},
		log: log.With("component", "ocr.vision"),
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	switch {
	case creds == "":
		return nil
	case strings.HasPrefix(creds, "{"):
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	default:
		return []option.ClientOption{option.WithCredentialsFile(creds)}
	}
}

func (r *VisionReader) ReadText(ctx context.Context, content []byte, mimeType string) (string, error) {
	if len(content) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	resp, err := r.annotate(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: content},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	if r0.FullTextAnnotation == nil {
		r.log.Debug("no text detected", "mime_type", mimeType, "bytes", len(content))
		return "", nil
	}
	// Line breaks are kept; the topic heuristics are line oriented.
	return strings.ReplaceAll(r0.FullTextAnnotation.Text, "\u00a0", " "), nil
}

func (r *VisionReader) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// PlainTextReader treats uploads as UTF-8 text. It stands in for OCR in
// development and for text syllabi.
type PlainTextReader struct{}

func (PlainTextReader) ReadText(_ context.Context, content []byte, _ string) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("upload is not UTF-8 text")
	}
	return string(content), nil
}

func (PlainTextReader) Close() error { return nil }

// NewReader picks a backend by name: "vision" or "text".
func NewReader(ctx context.Context, backend string, log *logger.Logger) (TextReader, error) {
	switch backend {
	case "", "vision":
		return NewVisionReader(ctx, log)
	case "text":
		return PlainTextReader{}, nil
	}
	return nil, fmt.Errorf("unknown OCR backend %q", backend)
}
