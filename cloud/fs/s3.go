// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Filesystem struct {
	svc          *s3.S3
	renderBucket string
}

func NewS3Filesystem(session *session.Session, stage string) (*S3Filesystem, error) {
	if stage == "" {
		return nil, fmt.Errorf("s3: missing stage")
	}
	return &S3Filesystem{
		svc:          s3.New(session),
		renderBucket: "truchet-" + stage + "-renders",
	}, nil
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	// Patch S3's limited vocabulary of default content types
	var contentType *string
	if mime := ContentType(filename); mime != "" {
		contentType = aws.String(mime)
	}

	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.renderBucket),
		Key:          aws.String(filename),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType,
	})
	if err := req.Send(); err != nil {
		return fmt.Errorf("s3: uploading %s: %w", filename, err)
	}
	return nil
}

func (s3Filesystem *S3Filesystem) String() string {
	return "s3://" + s3Filesystem.renderBucket
}
