package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johanforsgren/profilexport/internal/logger"
)

const (
	maxLoggedBody = 10000
	redacted      = "[REDACTED]"
)

// LoggingTransport wraps an http.RoundTripper to log requests and responses
// with credentials redacted.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{
		Transport: transport,
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logRequest(req)

	resp, err := t.Transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.LogError("HTTP_REQUEST", fmt.Sprintf("%s %s", req.Method, req.URL.Redacted()), err)
		return nil, err
	}

	if err := t.logResponse(req, resp, duration); err != nil {
		logger.LogError("HTTP_RESPONSE", fmt.Sprintf("%s %s", req.Method, req.URL.Redacted()), err)
		return nil, err
	}

	return resp, nil
}

func (t *LoggingTransport) logRequest(req *http.Request) {
	var buf bytes.Buffer

	buf.WriteString("=== HTTP REQUEST ===\n")
	fmt.Fprintf(&buf, "%s %s %s\n", req.Method, req.URL.Redacted(), req.Proto)
	writeHeaders(&buf, req.Header)
	buf.WriteString("===================\n")

	logger.Log("%s", buf.String())
}

// logResponse logs resp and replaces its body with a buffered copy. A failed
// body read is returned and the response must not be used.
func (t *LoggingTransport) logResponse(req *http.Request, resp *http.Response, duration time.Duration) error {
	var buf bytes.Buffer

	buf.WriteString("=== HTTP RESPONSE ===\n")
	fmt.Fprintf(&buf, "%s %s - %s (%v)\n", req.Method, req.URL.Path, resp.Status, duration)
	writeHeaders(&buf, resp.Header)

	if resp.Body != nil && resp.ContentLength != 0 {
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		// Restore the body for the caller
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if len(bodyBytes) > 0 {
			if len(bodyBytes) < maxLoggedBody {
				fmt.Fprintf(&buf, "Body (%d bytes):\n", len(bodyBytes))
				buf.Write(RedactBody(bodyBytes))
				buf.WriteString("\n")
			} else {
				fmt.Fprintf(&buf, "Body: (%d bytes, too large to log)\n", len(bodyBytes))
			}
		}
	}

	buf.WriteString("====================\n")

	logger.Log("%s", buf.String())
	return nil
}

func writeHeaders(buf *bytes.Buffer, header http.Header) {
	buf.WriteString("Headers:\n")
	for name, values := range header {
		if isSensitiveHeader(name) {
			fmt.Fprintf(buf, "  %s: %s\n", name, redacted)
			continue
		}
		for _, value := range values {
			fmt.Fprintf(buf, "  %s: %s\n", name, value)
		}
	}
}

func isSensitiveHeader(name string) bool {
	switch strings.ToLower(name) {
	case "authorization", "x-api-key", "api-key", "x-auth-token", "cookie", "set-cookie":
		return true
	}
	return false
}

func isSensitiveField(name string) bool {
	switch strings.ToLower(name) {
	case "password", "passwd", "pwd", "secret", "token", "api_key", "apikey":
		return true
	}
	return false
}

// RedactBody replaces credential members anywhere in a JSON body. Bodies that
// are not JSON are not logged at all.
func RedactBody(body []byte) []byte {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return []byte(fmt.Sprintf("(%d bytes, non-JSON body omitted)", len(body)))
	}

	out, err := json.Marshal(redactValue(doc))
	if err != nil {
		return []byte("(body omitted)")
	}
	return out
}

func redactValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if isSensitiveField(k) {
				val[k] = redacted
				continue
			}
			val[k] = redactValue(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = redactValue(inner)
		}
		return val
	default:
		return val
	}
}
