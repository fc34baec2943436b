package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gosimple/slug"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/shared"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

const exportURLExpiry = 24 * time.Hour

// ArchiveService stores conversation exports in S3-compatible storage. It is
// disabled when MINIO_ENDPOINT is unset.
type ArchiveService struct {
	appContext.DefaultService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool

	clock shared.Clock
}

const ARCHIVE_SVC = "archive_svc"

func (svc ArchiveService) Id() string {
	return ARCHIVE_SVC
}

func (svc *ArchiveService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	svc.bucketName = envOr("MINIO_BUCKET_NAME", "creator-exports")
	return svc.DefaultService.Configure(ctx)
}

func (svc *ArchiveService) Start() error {
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	if svc.endpoint == "" {
		log.Info("Archive storage disabled")
		return nil
	}

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}
	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithField("endpoint", svc.endpoint).Info("Archive storage started")
	return nil
}

func (svc *ArchiveService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}
	if exists {
		return nil
	}

	if err := svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %v", err)
	}
	log.WithField("bucket", svc.bucketName).Info("Created archive bucket")
	return nil
}

// ExportConversation uploads the transcript as JSON and returns a presigned
// download link.
func (svc *ArchiveService) ExportConversation(ctx context.Context, conv dto.ConversationResponse) (*dto.ExportResponse, error) {
	if svc.client == nil {
		return nil, shared.NewUpstreamError(nil, "Conversation export is not configured")
	}

	body, err := shared.Marshal(conv)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode conversation")
	}

	now := svc.clock.Now()
	key := exportObjectKey(conv, now)
	_, err = svc.client.PutObject(ctx, svc.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return nil, shared.NewUpstreamError(err, "Failed to upload export")
	}

	url, err := svc.client.PresignedGetObject(ctx, svc.bucketName, key, exportURLExpiry, nil)
	if err != nil {
		return nil, shared.NewUpstreamError(err, "Failed to sign export URL")
	}

	log.WithFields(log.Fields{"conversation_id": conv.ID, "object": key}).Info("Conversation exported")
	return &dto.ExportResponse{
		ConversationID: conv.ID,
		ObjectKey:      key,
		URL:            url.String(),
		ExpiresAt:      now.Add(exportURLExpiry),
	}, nil
}

// exportObjectKey names the object after the first user message so exports
// are recognisable in the bucket.
func exportObjectKey(conv dto.ConversationResponse, now time.Time) string {
	title := "conversation"
	for _, m := range conv.Messages {
		if m.Role == shared.RoleUser {
			if s := slug.Make(truncate(m.Content, 48)); s != "" {
				title = s
			}
			break
		}
	}
	return fmt.Sprintf("conversations/%s/%s-%s-%s.json", conv.UserID, now.Format("20060102"), title, conv.ID)
}
