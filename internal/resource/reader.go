// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package resource implements the auxiliary resource readers: pure
// functions from a filesystem (or S3) path to a cluster map, embedding
// map, or affix set keyed by word form. Resources are small files read
// whole, once, up front.
package resource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/crfsuitetagger/crfsuitetagger/internal/errs"
)

// S3Config configures the client used for "s3://" resource paths.
// Credentials are always the static AccessKey/SecretKey pair; an empty
// Region means us-east-1.
type S3Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Region       string
	UsePathStyle bool
}

// open returns a reader over path, which is either a local
// filesystem path or an "s3://bucket/key" URI. The whole file is
// ingested; there is no caching between calls.
func open(path string, s3cfg S3Config) (io.ReadCloser, error) {
	if bucket, key, ok := strings.Cut(strings.TrimPrefix(path, "s3://"), "/"); ok && strings.HasPrefix(path, "s3://") {
		return openS3(bucket, key, s3cfg)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownResource, "open resource %q: %v", path, err)
	}
	return f, nil
}

func openS3(bucket, key string, cfg S3Config) (io.ReadCloser, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("resource: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	out, err := client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errs.Wrap(errs.UnknownResource, "get s3://%s/%s: %v", bucket, key, err)
	}
	return out.Body, nil
}

func scanLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
