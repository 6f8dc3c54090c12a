package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FetchError reports a transport failure or a non-200 response
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fetch GETs pageURL and returns the body decoded to UTF-8
func (s *Scraper) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	br := bufio.NewReader(resp.Body)
	enc := determineEncoding(br, resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(transform.NewReader(br, enc.NewDecoder()))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// determineEncoding sniffs the page encoding from the Content-Type header and the
// first kilobyte of the body.
func determineEncoding(r *bufio.Reader, contentType string) encoding.Encoding {
	head, err := r.Peek(1024)
	if err != nil && len(head) == 0 {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(head, contentType)
	return e
}
