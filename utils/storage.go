package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Le contenu des posts est privé: les lectures passent toujours par une
// URL signée à durée limitée, jamais par une URL publique.
const SignedURLTTL = time.Hour

var storageClient *s3.S3
var storageBucket string

// InitStorage initialise le client S3 pour le bucket de contenu
func InitStorage() error {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	awsConfig := &aws.Config{
		Region: aws.String(region),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	}

	// Endpoint MinIO pour le développement local
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		awsConfig.Endpoint = aws.String(endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if os.Getenv("S3_USE_SSL") == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return fmt.Errorf("erreur lors de la création de la session AWS: %v", err)
	}

	storageBucket = os.Getenv("S3_BUCKET_NAME")
	if storageBucket == "" {
		storageBucket = "content"
	}
	storageClient = s3.New(sess)

	// Création du bucket si besoin (MinIO)
	if _, err := storageClient.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(storageBucket),
	}); err != nil {
		if _, err := storageClient.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(storageBucket),
		}); err != nil {
			LogError(err, "Bucket de contenu indisponible et création impossible")
		}
	}

	LogSuccess("Stockage de contenu initialisé avec succès")
	return nil
}

// UploadContent téléverse un média de post sous une clé opaque et retourne cette clé.
// La clé, pas une URL, est ce qui est persisté sur le post.
func UploadContent(file *multipart.FileHeader, key string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("erreur lors de l'ouverture du fichier: %v", err)
	}
	defer src.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("erreur lors de la lecture du fichier: %v", err)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = storageClient.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("erreur lors du téléversement vers le stockage: %v", err)
	}

	return key, nil
}

// SignedContentURL retourne une URL de lecture signée, valable SignedURLTTL
func SignedContentURL(key string) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("stockage de contenu non initialisé")
	}

	req, _ := storageClient.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(storageBucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(SignedURLTTL)
	if err != nil {
		return "", fmt.Errorf("erreur lors de la signature de l'URL: %v", err)
	}
	return url, nil
}

// DeleteContent supprime un média de post du bucket
func DeleteContent(key string) error {
	_, err := storageClient.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(storageBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression du média: %v", err)
	}
	return nil
}
