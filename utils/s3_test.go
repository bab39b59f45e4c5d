package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func dataURL(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestImageUploader_Upload(t *testing.T) {
	putter := &fakePutter{}
	u := NewImageUploader(putter, "food-bucket", "https://cdn.example.com/")

	url, err := u.Upload(context.Background(), dataURL("image/jpeg", []byte("jpeg-bytes")))
	require.NoError(t, err)

	require.NotNil(t, putter.in)
	key := aws.ToString(putter.in.Key)
	assert.True(t, strings.HasPrefix(key, "food-images/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.Equal(t, "food-bucket", aws.ToString(putter.in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(putter.in.ContentType))
	assert.Equal(t, []byte("jpeg-bytes"), putter.body)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
}

func TestImageUploader_PutFailure(t *testing.T) {
	boom := errors.New("access denied")
	u := NewImageUploader(&fakePutter{err: boom}, "b", "https://cdn.example.com")

	_, err := u.Upload(context.Background(), dataURL("image/png", []byte("png")))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidImage)
}

func TestDecodeDataURL(t *testing.T) {
	ct, img, err := DecodeDataURL(dataURL("image/png", []byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img)

	bad := []string{
		"",
		"just-some-text",
		"data:image/png;base64",
		"data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")),
		"data:image/png,rawdata",
		"data:image/png;base64,%%%not-base64",
		"data:image/png;base64,",
	}
	for _, in := range bad {
		_, _, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, ErrInvalidImage, in)
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".x-custom", extensionFor("image/x-custom"))
}
