package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"

	"github.com/opdss/addressbook/contracts/storage"
)

/*
* Cos COS
* Document: https://cloud.tencent.com/document/product/436/31215
 */

type CosConfig struct {
	AccessKeyId     string `help:"accessKeyId" default:"" json:"access_key_id"`
	AccessKeySecret string `help:"accessKeySecret" default:"" json:"access_key_secret"`
	Url             string `help:"访问地址" default:"" json:"url"`
	Endpoint        string `help:"存储桶api入口" default:"" json:"endpoint"`
}

var _ storage.FileSystem = (*Cos)(nil)

type Cos struct {
	config   CosConfig
	instance *cos.Client
}

func NewCos(config CosConfig) (*Cos, error) {
	if config.AccessKeyId == "" || config.AccessKeySecret == "" || config.Endpoint == "" {
		return nil, ErrStorage.New("please set cos configuration")
	}

	u, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}

	b := &cos.BaseURL{BucketURL: u}
	client := cos.NewClient(b, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  config.AccessKeyId,
			SecretKey: config.AccessKeySecret,
		},
	})

	if config.Url == "" {
		config.Url = config.Endpoint
	}
	config.Url = strings.TrimSuffix(config.Url, "/")

	return &Cos{
		config:   config,
		instance: client,
	}, nil
}

func (r *Cos) Exists(ctx context.Context, file string) bool {
	ok, err := r.instance.Object.IsExist(ctx, validPath(file))
	if err != nil {
		return false
	}
	return ok
}

func (r *Cos) GetStream(ctx context.Context, file string) (io.ReadCloser, error) {
	resp, err := r.instance.Object.Get(ctx, validPath(file), nil)
	if err != nil {
		return nil, ErrStorage.Wrap(err)
	}
	return resp.Body, nil
}

func (r *Cos) MimeType(ctx context.Context, file string) (string, error) {
	resp, err := r.instance.Object.Head(ctx, validPath(file), nil)
	if err != nil {
		return "", ErrStorage.Wrap(err)
	}
	return resp.Header.Get("Content-Type"), nil
}

func (r *Cos) PutStream(ctx context.Context, file string, rs io.Reader) error {
	content, contentType, err := detectMime(file, rs)
	if err != nil {
		return ErrStorage.Wrap(err)
	}
	_, err = r.instance.Object.Put(ctx, validPath(file), bytes.NewReader(content), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: contentType,
		},
	})
	return ErrStorage.Wrap(err)
}

func (r *Cos) Url(file string) string {
	return r.config.Url + "/" + validPath(file)
}
