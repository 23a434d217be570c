package aws

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignedUpload describes a direct-to-S3 PUT the client performs itself.
type PresignedUpload struct {
	URL       string
	Key       string
	PublicURL string
	Headers   map[string]string
}

// ImagePresigner issues presigned PUT URLs for product images.
type ImagePresigner struct {
	presigner    *s3.PresignClient
	bucket       string
	prefix       string
	publicDomain string
}

// NewImagePresigner builds a presigner for bucket. Keys are placed under
// prefix. publicDomain, when set, is used for the returned public URL (for
// example a CloudFront distribution); otherwise the bucket's S3 host is used.
func NewImagePresigner(cfg sdkaws.Config, bucket, prefix, publicDomain string, usePathStyle bool) *ImagePresigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})
	return &ImagePresigner{
		presigner:    s3.NewPresignClient(client),
		bucket:       bucket,
		prefix:       strings.Trim(prefix, "/"),
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
	}
}

// PresignProductImage returns a presigned PUT for a new object derived from
// filename. Each call yields a distinct key.
func (p *ImagePresigner) PresignProductImage(ctx context.Context, filename, contentType string, expires time.Duration) (*PresignedUpload, error) {
	key := p.objectKey(filename)

	presigned, err := p.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = expires
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		URL:       presigned.URL,
		Key:       key,
		PublicURL: p.publicURL(key),
		Headers:   headers,
	}, nil
}

func (p *ImagePresigner) objectKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}

	key := path.Join("products", uuid.NewString(), name)
	if p.prefix != "" {
		key = path.Join(p.prefix, key)
	}
	return key
}

func (p *ImagePresigner) publicURL(key string) string {
	if p.publicDomain != "" {
		domain := p.publicDomain
		if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
			domain = "https://" + domain
		}
		return domain + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", p.bucket, key)
}
