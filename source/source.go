// Package source retrieves tabular time series from a local file or an
// http(s) URL and hands them over as raw records.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/andareed/siftly-rangeview/logging"
	"github.com/andareed/siftly-rangeview/rangeview"
)

type Format string

const (
	FormatAuto Format = ""
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrEmptySource       = errors.New("source has no header row")
)

// StatusError is returned when a URL answers with a non-2xx status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

type FetchOptions struct {
	Format  Format
	Sheet   string // xlsx only; first sheet when empty
	Timeout time.Duration
	Client  *http.Client
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Fetch reads location and parses it into a raw table.
func Fetch(ctx context.Context, location string, opts FetchOptions) (rangeview.RawTable, error) {
	format, err := detectFormat(location, opts.Format)
	if err != nil {
		return rangeview.RawTable{}, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	data, err := readAll(ctx, location, opts.Client)
	if err != nil {
		return rangeview.RawTable{}, err
	}
	logging.Debugf("source: read %d bytes from %s (format=%s)", len(data), location, format)

	switch format {
	case FormatXLSX:
		return parseXLSX(bytes.NewReader(data), opts.Sheet)
	default:
		return parseCSV(bytes.NewReader(data))
	}
}

func detectFormat(location string, forced Format) (Format, error) {
	if forced != FormatAuto {
		switch forced {
		case FormatCSV, FormatXLSX:
			return forced, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, forced)
	}

	name := location
	if IsRemote(location) {
		if u, err := url.Parse(location); err == nil {
			name = path.Base(u.Path)
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func readAll(ctx context.Context, location string, client *http.Client) ([]byte, error) {
	if !IsRemote(location) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return data, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: location, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
