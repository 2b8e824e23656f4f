// Copyright 2026 The engiffen authors.
// SPDX-License-Identifier: Apache-2.0

// Package s3sink uploads finished GIF streams to Amazon S3 or an
// S3-compatible service.
package s3sink

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Match reports whether out names an S3 destination.
func Match(out string) bool {
	return strings.HasPrefix(out, "s3://")
}

// Upload writes data to the destination URL, which should be of the form
// "s3://region/bucket/path/to/out.gif".  The query parameters "endpoint",
// "disableSSL" and "s3ForcePathStyle" are honored for s3-compatible
// services other than AWS.
func Upload(dest string, data []byte) error {
	u, err := url.Parse(dest)
	if err != nil {
		return err
	}

	region := u.Host
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return fmt.Errorf("s3sink: destination %q missing bucket or key", dest)
	}
	bucket, key := parts[0], parts[1]

	config := aws.NewConfig().WithRegion(region)
	if v := u.Query().Get("endpoint"); v != "" {
		config = config.WithEndpoint(v)
	}
	if v := u.Query().Get("disableSSL"); v == "1" {
		config = config.WithDisableSSL(true)
	}
	if v := u.Query().Get("s3ForcePathStyle"); v == "1" {
		config = config.WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return err
	}

	_, err = s3.New(sess).PutObject(&s3.PutObjectInput{
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String("image/gif"),
	})
	return err
}
