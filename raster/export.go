package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"

	"pingy/codec"
)

const DataURIPrefix = "data:image/png;base64,"

// Result is delivered once on the channel returned by ToBase64 and ToBase64DataURI.
type Result struct {
	Text string
	Err  error
}

// ToBase64 encodes the image as PNG in the background. The returned channel receives
// the base64 text exactly once, after the whole PNG stream was read, and is then closed.
// The image must not be modified until the result arrives.
func (img *Image) ToBase64() <-chan Result {
	return img.export("")
}

// ToBase64DataURI is ToBase64 with the data:image/png;base64, prefix.
func (img *Image) ToBase64DataURI() <-chan Result {
	return img.export(DataURIPrefix)
}

func (img *Image) export(prefix string) <-chan Result {
	done := make(chan Result, 1)
	stream := codec.Pack(img.NRGBA())

	go func() {
		defer close(done)
		defer stream.Close()

		data, err := accumulate(stream)
		if err != nil {
			done <- Result{Err: err}
			return
		}
		done <- Result{Text: prefix + base64.StdEncoding.EncodeToString(data)}
	}()

	return done
}

// accumulate concatenates chunks in arrival order until end of stream.
func accumulate(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 32*1024)
	for {
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		} else if err != nil {
			return nil, err
		}
	}
}

// EncodeBase64 waits for ToBase64 or for ctx to be done.
func (img *Image) EncodeBase64(ctx context.Context) (string, error) {
	return wait(ctx, img.ToBase64())
}

// EncodeDataURI waits for ToBase64DataURI or for ctx to be done.
func (img *Image) EncodeDataURI(ctx context.Context) (string, error) {
	return wait(ctx, img.ToBase64DataURI())
}

func wait(ctx context.Context, ch <-chan Result) (string, error) {
	select {
	case res := <-ch:
		return res.Text, res.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
