// Package usage fetches external usage reports and reconciles them against
// a built registry.
package usage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Record is one external observation of live consumers for a (strategy,
// hash) revision. Records are read-only inputs; nothing here is persisted
// by the registry.
type Record struct {
	Strategy  string    `json:"strategy"`
	Hash      string    `json:"hash"`
	Instances []string  `json:"instances,omitempty"`
	Count     FlexCount `json:"count"`
}

// FlexCount handles usage counts that arrive as JSON numbers or numeric
// strings. Anything unparseable decodes to zero, which reconciliation
// treats as unused.
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = FlexCount(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = FlexCount(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*c = FlexCount(n)
			return nil
		}
	}
	*c = 0
	return nil
}

// Fetch reads usage records from a local file path or an http(s) URL. A
// payload fetched over HTTP is optionally persisted to outputPath. An
// empty source returns nil records: reconciliation is simply skipped.
func Fetch(source, outputPath string) ([]Record, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		payload, err := fetchURL(source)
		if err != nil {
			return nil, err
		}
		if outputPath != "" {
			if err := os.WriteFile(outputPath, payload, 0644); err != nil {
				return nil, fmt.Errorf("write usage export %s: %w", outputPath, err)
			}
		}
		return parsePayload(payload, source)
	}

	payload, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read usage export %s: %w", source, err)
	}
	return parsePayload(payload, source)
}

func fetchURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch usage from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch usage from %s: HTTP %d", url, resp.StatusCode)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch usage from %s: %w", url, err)
	}
	return payload, nil
}

// parsePayload accepts either a bare list of records or an object with a
// "usage" key holding that list.
func parsePayload(payload []byte, source string) ([]Record, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("usage export %s invalid JSON: %w", source, err)
		}
		return records, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("usage export %s invalid JSON: %w", source, err)
	}
	raw, ok := envelope["usage"]
	if !ok {
		return nil, fmt.Errorf("usage export %s missing usage array", source)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("usage export %s missing usage array", source)
	}
	return records, nil
}
