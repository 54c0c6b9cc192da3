package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingPart     = errors.New("multipart part not found")
	ErrUnsupportedType = errors.New("unsupported content type")
)

// BindMultipartFile streams the part named key of a multipart request. The
// returned reader still yields the whole part after content sniffing.
func BindMultipartFile(c echo.Context, key string) (io.Reader, string, error) {
	reader, err := c.Request().MultipartReader()
	if err != nil {
		return nil, "", fmt.Errorf("parsing multipart form: %w", err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("%w: %s", ErrMissingPart, key)
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading multipart form: %w", err)
		}

		if part.FormName() != key {
			continue
		}

		contentType, r, err := DetectContentType(part)
		if err != nil {
			return nil, "", fmt.Errorf("detecting content type: %w", err)
		}

		return r, contentType, nil
	}
}

// BindTextFile is BindMultipartFile restricted to text parts, such as CSV
// uploads.
func BindTextFile(c echo.Context, key string) (io.Reader, error) {
	r, contentType, err := BindMultipartFile(c, key)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(contentType, "text/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	return r, nil
}

// DetectContentType returns the MIME type of input and a new reader
// containing the whole data from input.
func DetectContentType(input io.Reader) (string, io.Reader, error) {
	// header will store the bytes mimetype uses for detection.
	header := bytes.NewBuffer(nil)

	mtype, err := mimetype.DetectReader(io.TeeReader(input, header))
	if err != nil {
		return "", nil, err
	}

	// Concatenate back the header to the rest of the file.
	recycled := io.MultiReader(header, input)

	return mtype.String(), recycled, nil
}
