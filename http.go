package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var (
	globalTimeout int
)

type scoreResult struct {
	Index          int
	Recommendation *ScoreRecommendation
	Error          error
}

func sendRequest(ctx context.Context, method, url string, queryParams url.Values, headers map[string]string, body io.Reader, timeout ...int) (*http.Response, error) {
	// Get timeout value, if passed, or use environment variable
	t := globalTimeout
	if len(timeout) > 0 {
		t = timeout[0]
	}

	// Create new HTTP client with timeout
	client := http.Client{
		Timeout: time.Duration(t) * time.Second,
	}

	// Create a new request bound to the caller context
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// Set query parameters if provided
	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	// Set headers if provided
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	// Initiate request
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	// Initialize re-used variables
	var respBody []byte
	var err error

	// Read the body and set up a defer to close the body to avoid
	// leaking resources.
	defer resp.Body.Close()

	// Check for gzipped "Content-Encoding" header
	if resp.Header.Get("Content-Encoding") == "gzip" {
		// Decompress response body
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("error creating gzip reader: %w", err)
		}
		defer gzipReader.Close()

		// Read decompressed content
		respBody, err = io.ReadAll(gzipReader)
		if err != nil {
			return nil, fmt.Errorf("error reading decompressed data: %w", err)
		}
	} else {
		// Assume decompressed data
		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
	}
	return respBody, nil
}

func scoreAll(ctx context.Context, client *llmClient, text string, codes []CodeRef, concurrency int) []BatchScoreResult {
	// Results keep the request order regardless of completion order
	results := make([]BatchScoreResult, len(codes))
	indices := make([]int, len(codes))
	for i, code := range codes {
		results[i] = BatchScoreResult{ICFCode: code.ICFCode, ICFTitle: code.ICFTitle}
		indices[i] = i
	}

	// Bound the number of in-flight LLM calls
	for _, chunk := range createChunks(indices, concurrency) {
		// Create sub-wait group
		var subWg sync.WaitGroup

		// Establish response channel
		resultCh := make(chan scoreResult, len(chunk))

		// Send all requests in the chunk
		sendAll(ctx, client, text, codes, chunk, resultCh, &subWg)

		// Close channel once all goroutines are finished
		go func() {
			subWg.Wait()
			close(resultCh)
		}()

		processResults(ctx, resultCh, results)
	}

	return results
}

func sendAll(ctx context.Context, client *llmClient, text string, codes []CodeRef, chunk []int, resultCh chan<- scoreResult, wg *sync.WaitGroup) {
	// Iterate over codes and request in parallel
	for _, i := range chunk {
		// Increment the wait group with the new request
		wg.Add(1)

		// Send request asynchronously using a goroutine
		go func(i int, code CodeRef) {
			defer wg.Done()

			recommendation, err := client.recommendScore(ctx, text, code.ICFCode, code.ICFTitle)

			// Send recommendation or error back to channel
			resultCh <- scoreResult{Index: i, Recommendation: recommendation, Error: err}
		}(i, codes[i])
	}
}

func processResults(ctx context.Context, resultCh <-chan scoreResult, results []BatchScoreResult) {
	// Process results as they arrive
	for result := range resultCh {
		entry := &results[result.Index]
		if result.Error != nil {
			logger(ctx, fmt.Errorf("score recommendation failed (code: %s): %w", entry.ICFCode, result.Error))
			entry.Error = result.Error.Error()
			continue
		}
		entry.ScoreRecommendation = result.Recommendation
	}
}

func createChunks[T any](values []T, chunkSize int) [][]T {
	if chunkSize <= 0 {
		chunkSize = len(values)
	}
	var chunks [][]T
	for chunkSize < len(values) {
		values, chunks = values[chunkSize:], append(chunks, values[0:chunkSize:chunkSize])
	}
	return append(chunks, values)
}
