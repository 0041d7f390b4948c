// Package s3 implements storage.Provider on Amazon S3 (or any S3 compatible
// endpoint) using presigned requests.
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/ReconfigureIO/asset-gateway/service/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	validator "gopkg.in/validator.v2"
)

var errUnsupportedVerb = errors.New("unsupported verb")

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	Bucket          string `env:"RECO_AWS_BUCKET" validate:"nonzero"`
	Region          string `env:"RECO_AWS_REGION" validate:"nonzero"`
	AccessKeyID     string `env:"RECO_AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"RECO_AWS_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"RECO_AWS_ENDPOINT"`
	ForcePathStyle  bool   `env:"RECO_AWS_FORCE_PATH_STYLE"`
}

// Service signs URLs and probes objects in a single bucket.
type Service struct {
	s3iface.S3API
	conf ServiceConfig
}

var _ storage.Provider = (*Service)(nil)

// New builds the S3 client once. Any failure is returned as a
// *storage.UnavailableError; callers are not expected to retry.
func New(conf ServiceConfig) (*Service, error) {
	if err := validator.Validate(conf); err != nil {
		return nil, &storage.UnavailableError{Reason: err}
	}

	awsConf := aws.NewConfig().
		WithRegion(conf.Region).
		WithMaxRetries(0)
	if conf.AccessKeyID != "" || conf.SecretAccessKey != "" {
		awsConf = awsConf.WithCredentials(
			credentials.NewStaticCredentials(conf.AccessKeyID, conf.SecretAccessKey, ""))
	}
	if conf.Endpoint != "" {
		awsConf = awsConf.WithEndpoint(conf.Endpoint)
	}
	if conf.ForcePathStyle {
		awsConf = awsConf.WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, &storage.UnavailableError{Reason: err}
	}
	if _, err := sess.Config.Credentials.Get(); err != nil {
		return nil, &storage.UnavailableError{Reason: err}
	}

	return NewWithClient(s3.New(sess), conf), nil
}

// NewWithClient wraps an existing S3 client.
func NewWithClient(api s3iface.S3API, conf ServiceConfig) *Service {
	return &Service{S3API: api, conf: conf}
}

// Conf returns the service configuration.
func (s *Service) Conf() *ServiceConfig {
	return &s.conf
}

// SignURL presigns a PutObject or GetObject request for req.Key.
func (s *Service) SignURL(ctx context.Context, req storage.SignRequest) (string, error) {
	var r *request.Request
	switch req.Verb {
	case storage.VerbPut:
		r, _ = s.PutObjectRequest(&s3.PutObjectInput{
			Bucket: aws.String(s.conf.Bucket), // Required
			Key:    aws.String(req.Key),       // Required
		})
		if req.Permission != storage.PermissionNone {
			r.Handlers.Build.PushBack(aclQuery(req.Permission))
		}
	case storage.VerbGet:
		r, _ = s.GetObjectRequest(&s3.GetObjectInput{
			Bucket: aws.String(s.conf.Bucket), // Required
			Key:    aws.String(req.Key),       // Required
		})
	default:
		return "", &storage.Error{Op: "Presign", Key: req.Key, Err: fmt.Errorf("%v %q", errUnsupportedVerb, req.Verb)}
	}
	r.SetContext(ctx)

	url, err := r.Presign(req.Expiry)
	if err != nil {
		return "", &storage.Error{Op: "Presign" + string(req.Verb), Key: req.Key, Err: err}
	}
	return url, nil
}

// CheckExists issues a HeadObject for key.
func (s *Service) CheckExists(ctx context.Context, key string) error {
	_, err := s.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.conf.Bucket), // Required
		Key:    aws.String(key),           // Required
	})
	if err == nil {
		return nil
	}
	if isMissing(err) {
		return storage.ErrNotFound
	}
	return &storage.Error{Op: "HeadObject", Key: key, Err: err}
}

// aclQuery carries the canned ACL as a signed query parameter. Set as
// PutObjectInput.ACL it would become a signed x-amz-acl header that plain
// PUT clients never send.
func aclQuery(p storage.Permission) func(*request.Request) {
	return func(r *request.Request) {
		q := r.HTTPRequest.URL.Query()
		q.Set("x-amz-acl", string(p))
		r.HTTPRequest.URL.RawQuery = q.Encode()
	}
}

func isMissing(err error) bool {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return false
	}
	switch aerr.Code() {
	case "NotFound", s3.ErrCodeNoSuchKey:
		return true
	}
	return false
}
