package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.github.com"

var ErrNotConfigured = errors.New("github publishing is not configured")

type Options struct {
	Token  string
	Owner  string
	Repo   string
	Branch string

	// APIURL overrides the GitHub API root (tests, GitHub Enterprise).
	APIURL string
}

// Client commits files through the GitHub contents API.
type Client struct {
	opts Options
	http *http.Client
}

// CommitResult describes the commit that now holds the file.
type CommitResult struct {
	Path       string `json:"path"`
	ContentSHA string `json:"contentSha"`
	CommitSHA  string `json:"commitSha,omitempty"`
	CommitURL  string `json:"commitUrl,omitempty"`
	Unchanged  bool   `json:"unchanged"`
}

func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" || opts.Owner == "" || opts.Repo == "" {
		return nil, ErrNotConfigured
	}
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	opts.APIURL = strings.TrimRight(opts.APIURL, "/")

	return &Client{
		opts: opts,
		http: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type remoteFile struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// CommitFile creates or updates path on the configured branch. When the
// file already holds content the call is a no-op.
func (c *Client) CommitFile(ctx context.Context, path string, content []byte, message string) (*CommitResult, error) {
	current, err := c.getFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if current != nil {
		existing, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(current.Content, "\n", ""))
		if err == nil && bytes.Equal(existing, content) {
			return &CommitResult{Path: path, ContentSHA: current.SHA, Unchanged: true}, nil
		}
	}

	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.opts.Branch,
	}
	if current != nil {
		payload["sha"] = current.SHA
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("github api error (%d): %s", status, string(raw))
	}

	var result struct {
		Content struct {
			Path string `json:"path"`
			SHA  string `json:"sha"`
		} `json:"content"`
		Commit struct {
			SHA     string `json:"sha"`
			HTMLURL string `json:"html_url"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	return &CommitResult{
		Path:       result.Content.Path,
		ContentSHA: result.Content.SHA,
		CommitSHA:  result.Commit.SHA,
		CommitURL:  result.Commit.HTMLURL,
	}, nil
}

// getFile returns nil when the file does not exist yet.
func (c *Client) getFile(ctx context.Context, path string) (*remoteFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("ref", c.opts.Branch)
	req.URL.RawQuery = q.Encode()

	raw, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var f remoteFile
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode github file: %w", err)
		}
		return &f, nil
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("github api error (%d): %s", status, string(raw))
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf(
		"%s/repos/%s/%s/contents/%s",
		c.opts.APIURL,
		c.opts.Owner,
		c.opts.Repo,
		strings.TrimLeft(path, "/"),
	)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return raw, resp.StatusCode, nil
}
