package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// EncodeBase64PNG 读取图片并转为 PNG，返回 Base64 编码
func EncodeBase64PNG(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := EncodePNG(f)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// EncodePNG decodes any registered format and re-encodes it as PNG.
func EncodePNG(r io.Reader) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, err
	}
	logger().Debugw("image encoded", "from", format, "size", buf.Len())
	return buf.Bytes(), nil
}
