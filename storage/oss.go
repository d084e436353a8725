package storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/opdss/addressbook/contracts/storage"
)

type OssConfig struct {
	AccessKeyId     string `help:"accessKeyId" default:"" json:"access_key_id"`
	AccessKeySecret string `help:"accessKeySecret" default:"" json:"access_key_secret"`
	Bucket          string `help:"存储桶" default:"" json:"bucket"`
	Url             string `help:"加速访问地址" default:"" json:"url"`
	Endpoint        string `help:"api入口" default:"" json:"endpoint"`
}

var _ storage.FileSystem = (*Oss)(nil)

/*
 * Oss OSS
 * Document: https://help.aliyun.com/document_detail/32144.html
 */
type Oss struct {
	config         OssConfig
	bucketInstance *oss.Bucket
}

func NewOss(config OssConfig) (*Oss, error) {
	if config.AccessKeyId == "" || config.AccessKeySecret == "" || config.Bucket == "" || config.Endpoint == "" {
		return nil, ErrStorage.New("please set oss configuration")
	}

	client, err := oss.New(config.Endpoint, config.AccessKeyId, config.AccessKeySecret)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	bucketInstance, err := client.Bucket(config.Bucket)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	if config.Url == "" {
		config.Url = config.Endpoint
	}
	config.Url = strings.TrimSuffix(config.Url, "/")
	return &Oss{
		config:         config,
		bucketInstance: bucketInstance,
	}, nil
}

func (r *Oss) Exists(ctx context.Context, file string) bool {
	exist, err := r.bucketInstance.IsObjectExist(validPath(file))
	if err != nil {
		return false
	}
	return exist
}

func (r *Oss) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	rc, err := r.bucketInstance.GetObject(validPath(file), oss.WithContext(ctx))
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return rc, nil
}

func (r *Oss) MimeType(ctx context.Context, file string) (string, error) {
	headers, err := r.bucketInstance.GetObjectDetailedMeta(validPath(file))
	if err != nil {
		return "", ErrStorage.Wrap(err)
	}
	return headers.Get("Content-Type"), nil
}

func (r *Oss) PutStream(ctx context.Context, file string, rs io.Reader) error {
	content, contentType, err := detectMime(file, rs)
	if err != nil {
		return ErrStorage.Wrap(err)
	}
	err = r.bucketInstance.PutObject(validPath(file), bytes.NewReader(content), oss.ContentType(contentType), oss.WithContext(ctx))
	return ErrStorage.Wrap(err)
}

func (r *Oss) Url(file string) string {
	return r.config.Url + "/" + validPath(file)
}
