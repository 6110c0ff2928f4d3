package canvas

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("not an image")

// ImageSource produces an inline image payload for the composer. Encode may
// block and must give up when ctx is done.
type ImageSource interface {
	Encode(ctx context.Context) (string, error)
}

// BytesSource is an uploaded file already held in memory.
type BytesSource []byte

func (b BytesSource) Encode(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return EncodeDataURI(b)
}

// EncodeDataURI checks that data is a decodable image and wraps it in a
// base64 data: URI. The bytes are not re-encoded.
func EncodeDataURI(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return "data:image/" + format + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI returns the raw bytes and media type of a base64 data: URI.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !IsDataURI(uri) {
		return nil, "", fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data uri")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("data uri is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data uri: %w", err)
	}
	return data, mime, nil
}

func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
