// Package storage guarda en S3 (o compatible: MinIO, R2) el contenido de los archivos de un pedido
// para que la fila de orders no cargue el base64 completo.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/pkg/config"
)

// objectPutter subconjunto de *s3.Client que usa el store.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PayloadStore implementa order.PayloadStore.
type S3PayloadStore struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Client crea el cliente S3 con región, credenciales estáticas opcionales y endpoint propio.
func NewS3Client(ctx context.Context, cfg config.StorageConfig) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET no configurado")
	}
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO
		})
	}
	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

// NewS3PayloadStore construye el store sobre un cliente S3.
func NewS3PayloadStore(client *s3.Client, bucket, prefix string) *S3PayloadStore {
	return newS3PayloadStore(client, bucket, prefix)
}

func newS3PayloadStore(client objectPutter, bucket, prefix string) *S3PayloadStore {
	return &S3PayloadStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Put sube el contenido del ítem a <prefix>/<orderID>/<itemID> y devuelve s3://bucket/key.
// Ambos ids deben ser segmentos simples: nunca se escribe fuera de la carpeta del pedido.
// El nombre del archivo va escapado porque la metadata S3 viaja en cabeceras US-ASCII.
func (s *S3PayloadStore) Put(ctx context.Context, orderID string, item entity.LineItem) (string, error) {
	if !entity.ValidItemID(orderID) || !entity.ValidItemID(item.ID) {
		return "", fmt.Errorf("storage/s3: clave inválida %q/%q", orderID, item.ID)
	}
	body, contentType, err := decodePayload(item.Content, item.Kind)
	if err != nil {
		return "", fmt.Errorf("storage/s3: item %s: %w", item.ID, err)
	}
	key := path.Join(s.prefix, orderID, item.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"filename": url.PathEscape(item.Name)},
	})
	if err != nil {
		return "", fmt.Errorf("storage/s3: put %s: %w", key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// decodePayload acepta un data URL (data:<mime>;base64,<datos>) o base64 plano.
// Si no es base64 válido el contenido se guarda tal cual.
func decodePayload(content, kind string) ([]byte, string, error) {
	contentType := kind
	if contentType == "" || contentType == entity.KindStationery {
		contentType = "application/octet-stream"
	}
	data := content
	if strings.HasPrefix(content, "data:") {
		meta, payload, ok := strings.Cut(content[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("data URL sin separador")
		}
		data = payload
		mime, isBase64 := strings.CutSuffix(meta, ";base64")
		if mime != "" {
			contentType = mime
		}
		if !isBase64 {
			return []byte(payload), contentType, nil
		}
	}
	body, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return []byte(content), contentType, nil
	}
	return body, contentType, nil
}
