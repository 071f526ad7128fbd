package storage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeyConvention(t *testing.T) {
	key := ObjectKey(42, 3, "foto.JPG")

	re := regexp.MustCompile(`^cases/case_42/image_3_[0-9a-zA-Z]{21}\.jpg$`)
	assert.Regexp(t, re, key)
}

func TestObjectKeyUniquePerCall(t *testing.T) {
	a := ObjectKey(7, 1, "a.png")
	b := ObjectKey(7, 1, "a.png")
	assert.NotEqual(t, a, b)
}

func TestObjectKeyWithoutExtension(t *testing.T) {
	key := ObjectKey(1, 2, "upload")
	assert.Regexp(t, `^cases/case_1/image_2_[0-9a-zA-Z]{21}\.bin$`, key)
}

func TestPublicURL(t *testing.T) {
	s := NewS3Storage(nil, "mi-bucket", "us-east-2", 0)

	url := s.PublicURL("cases/case_9/image_1_abc.jpg")
	require.Equal(t, "https://mi-bucket.s3.us-east-2.amazonaws.com/cases/case_9/image_1_abc.jpg", url)
}
