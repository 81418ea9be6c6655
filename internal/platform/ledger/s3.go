package ledger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"giveaway-bot/internal/common/logger"
)

const csvHeader = "User ID,Username,Join Time\n"

// S3Ledger is the participant ledger collaborator backed by per-giveaway CSV
// objects in S3. The engine serializes writes per channel, so the
// get-append-put on AppendRow never races itself.
type S3Ledger struct {
	client        *s3.Client
	bucket        string
	keyPrefix     string
	publicBaseURL string
	log           zerolog.Logger
}

// NewS3Ledger creates the ledger client using the default AWS credential
// chain.
func NewS3Ledger(ctx context.Context, bucket, region, keyPrefix, publicBaseURL string) (*S3Ledger, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &S3Ledger{
		client:        s3.NewFromConfig(cfg),
		bucket:        bucket,
		keyPrefix:     strings.Trim(keyPrefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           logger.With("ledger"),
	}, nil
}

func (l *S3Ledger) objectKey(id string) string {
	return l.keyPrefix + "/" + id + ".csv"
}

// Create provisions a header-only CSV object named after the giveaway title
// and returns its key plus the public view URL.
func (l *S3Ledger) Create(ctx context.Context, title string) (string, string, error) {
	id := title
	key := l.objectKey(id)

	_, err := l.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(l.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(csvHeader),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", "", fmt.Errorf("create ledger object: %w", err)
	}

	url := l.publicBaseURL + "/" + key
	l.log.Info().Str("ledger_id", id).Str("url", url).Msg("Ledger created")
	return id, url, nil
}

// AppendRow appends one join record to the ledger object.
func (l *S3Ledger) AppendRow(ctx context.Context, ledgerID string, userID int64, displayName, joinTime string) error {
	key := l.objectKey(ledgerID)

	resp, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("read ledger object: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read ledger object: %w", err)
	}

	row := strconv.FormatInt(userID, 10) + "," + csvEscape(displayName) + "," + joinTime + "\n"

	buf := bytes.NewBuffer(body)
	buf.WriteString(row)

	_, err = l.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(l.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("write ledger object: %w", err)
	}

	return nil
}

func csvEscape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
