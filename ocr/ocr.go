//go:build ocr

// Package ocr recognizes the text inside extracted images so that image
// elements can carry alternative text.
//
// This implementation wraps the Tesseract OCR engine via gosseract. It
// requires Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for OCR operations. It is safe for concurrent use;
// recognitions are serialized.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a new OCR client recognizing the given languages, separated by
// "+" (e.g. "eng+fra"). An empty lang keeps Tesseract's default.
// The client should be closed when no longer needed to release resources.
func New(lang string) (*Client, error) {
	client := gosseract.NewClient()
	if lang != "" {
		if err := client.SetLanguage(strings.Split(lang, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set language %q: %w", lang, err)
		}
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
