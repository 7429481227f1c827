package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyURL is returned when no URL is given.
var ErrEmptyURL = errors.New("empty url")

const tracerName = "github.com/0xalexb/hjarta-helpers/download"

// File fetches url with a GET request and writes the body to target.
//
// The response status is returned whatever it is, but target is only written
// for 200 OK. The body is streamed into a temporary file next to target which
// is renamed over target once complete, so target is never left half written.
// A nil client means http.DefaultClient.
func File(ctx context.Context, client *http.Client, url string, target string) (status int, err error) {
	if url == "" {
		return 0, ErrEmptyURL
	}

	if client == nil {
		client = http.DefaultClient
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "download.file",
		trace.WithAttributes(
			attribute.String("http.url", url),
			attribute.String("file.path", target),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	slog.Info("downloading file", slog.String("url", url))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}

	response, err := client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("get %q: %w", url, err)
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	if response.StatusCode != http.StatusOK {
		slog.Warn("file not downloaded", slog.String("url", url), slog.Int("status", response.StatusCode))

		return response.StatusCode, nil
	}

	written, err := save(response.Body, target)
	if err != nil {
		return response.StatusCode, err
	}

	span.SetAttributes(attribute.Int64("file.size", written))
	slog.Info("file downloaded", slog.String("url", url), slog.String("path", target), slog.Int64("size", written))

	return response.StatusCode, nil
}

func save(body io.Reader, target string) (int64, error) {
	partial := filepath.Join(filepath.Dir(target), filepath.Base(target)+"."+uuid.NewString()+".part")

	file, err := os.Create(partial) //nolint:gosec // caller chooses the target
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", partial, err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(partial)

		return 0, fmt.Errorf("write %q: %w", partial, err)
	}

	err = os.Rename(partial, target)
	if err != nil {
		_ = os.Remove(partial)

		return 0, fmt.Errorf("rename to %q: %w", target, err)
	}

	return written, nil
}
