/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const DefaultPrefix = "s3cache"

type Options struct {
	// Bucket is the name of the S3 bucket, e.g. "mybucket".
	Bucket string

	// Prefix namespaces object keys within the bucket so several caches can
	// share one. Empty means DefaultPrefix.
	Prefix string

	// Gzip compresses entries in Set and decompresses them in Get. Object
	// keys get a ".gz" suffix so compressed and plain entries never collide.
	Gzip bool

	LogErrors bool
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client used by the cache. Init() creates one from the
	// default Config; callers may replace it afterwards.
	Client *s3.Client

	opts Options

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// New returns a Cache backed by opts.Bucket. Callers must invoke Init() on the
// returned Cache before use.
func New(ctx context.Context, opts Options) *Cache {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}

	return &Cache{
		ctx:  ctx,
		opts: opts,
	}
}

// Init loads the default AWS configuration and verifies the bucket is
// reachable and listable. The default configuration sources are:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func (c *Cache) Init() error {
	if c.opts.Bucket == "" {
		return fmt.Errorf("s3cache.init: no bucket configured")
	}

	var err error
	c.Config, err = config.LoadDefaultConfig(c.ctx)
	if err != nil {
		return fmt.Errorf("s3cache.init: failed to load AWS config: %w", err)
	}
	c.Client = s3.NewFromConfig(c.Config)

	if _, err = c.Client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.opts.Bucket),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.opts.Bucket, err)
	}
	if _, err = c.Client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.opts.Bucket),
		Prefix:  aws.String(c.opts.Prefix + "/"),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3cache.init: list objects failed for %s: %w",
			c.opts.Bucket, err)
	}

	return nil
}

func (c *Cache) Get(key string) ([]byte, bool) {
	objKey := c.ObjectKey(key)
	resp, err := c.Client.GetObject(c.ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		// no such key just indicates a cache miss
		if !isNoSuchKey(err) {
			c.logf("s3cache.get: failed to get object %v/%v: %v", c.opts.Bucket,
				objKey, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if c.opts.Gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logf("s3cache.get: failed to open compressed object %v/%v: %v",
				c.opts.Bucket, objKey, err)
			return nil, false
		}
		defer gr.Close()
		rdr = gr
	}

	data, err := io.ReadAll(rdr)
	if err != nil {
		c.logf("s3cache.get: failed to read object %v/%v: %v", c.opts.Bucket,
			objKey, err)
		return nil, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	objKey := c.ObjectKey(key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
		Body:   bytes.NewReader(data),
	}

	if c.opts.Gzip {
		body, err := compress(data)
		if err != nil {
			c.logf("s3cache.set: failed to gzip data for %v/%v: %v",
				c.opts.Bucket, objKey, err)
			return
		}
		input.Body = body
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := c.Client.PutObject(c.ctx, input); err != nil {
		c.logf("s3cache.set: put failed for %v/%v: %v", c.opts.Bucket, objKey,
			err)
	}
}

func (c *Cache) Delete(key string) {
	objKey := c.ObjectKey(key)
	_, err := c.Client.DeleteObject(c.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.opts.Bucket),
		Key:    aws.String(objKey),
	})
	if err != nil {
		c.logf("s3cache.delete: delete failed for %v/%v: %v", c.opts.Bucket,
			objKey, err)
	}
}

// ObjectKey maps a cache key (normally a request URL) to its S3 object key:
// <prefix>/<md5 of key>[.gz].
func (c *Cache) ObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := path.Join(c.opts.Prefix, hex.EncodeToString(h.Sum(nil)))
	if c.opts.Gzip {
		objKey += ".gz"
	}

	return objKey
}

func (c *Cache) logf(format string, args ...any) {
	if c.opts.LogErrors {
		log.Printf(format, args...)
	}
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

func compress(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}
