// Package runner proxies code execution to a Piston compatible service.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrRunner              = errors.New("runner failed")
)

const maxResponseBody = 1 << 20

type Result struct {
	Output string `json:"runOutput"`
	Stdout string `json:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty"`
	Code   int    `json:"code"`
}

type Executor interface {
	Execute(ctx context.Context, language, source string) (Result, error)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
}

type pistonStage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Output string `json:"output"`
	Code   *int   `json:"code"`
}

type pistonResponse struct {
	Run     pistonStage  `json:"run"`
	Compile *pistonStage `json:"compile"`
	Message string       `json:"message"`
}

// Execute runs source with the pinned version of language. A failed compile
// stage is reported as the run output.
func (c *Client) Execute(ctx context.Context, language, source string) (Result, error) {
	version, ok := VersionOf(language)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	body, err := json.Marshal(pistonRequest{
		Language: language,
		Version:  version,
		Files:    []pistonFile{{Content: source}},
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRunner, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrRunner, err)
	}

	var pr pistonResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return Result{}, fmt.Errorf("%w: bad response: %v", ErrRunner, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d: %s", ErrRunner, resp.StatusCode, pr.Message)
	}

	log.Debug().Str("module", "runner").Str("language", language).Dur("took", time.Since(start)).Msg("executed")

	stage := pr.Run
	if pr.Compile != nil && pr.Compile.Code != nil && *pr.Compile.Code != 0 {
		stage = *pr.Compile
	}
	res := Result{Output: stage.Output, Stdout: stage.Stdout, Stderr: stage.Stderr}
	if stage.Code != nil {
		res.Code = *stage.Code
	}
	return res, nil
}
