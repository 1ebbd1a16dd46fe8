package wait

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout      = time.Minute
	defaultHTTPPollInterval = time.Second
	defaultHTTPReadTimeout  = 5 * time.Second
)

// HTTPStrategy waits until an HTTP endpoint of the target answers with an
// accepted status code.
//
// Each request is bounded by the read timeout, independent of the outer poll
// loop. By default GET is used and 200, 201, 202 and 204 are accepted.
type HTTPStrategy struct {
	timing

	path        string
	port        int
	readTimeout time.Duration
	statusCodes []int
	method      string
	tls         bool
	insecure    bool
	header      http.Header
}

func newHTTPStrategy(path string, port int) (HTTPStrategy, error) {
	if err := validatePort(port); err != nil {
		return HTTPStrategy{}, err
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return HTTPStrategy{
		timing:      timing{timeout: defaultHTTPTimeout, pollInterval: defaultHTTPPollInterval},
		path:        path,
		port:        port,
		readTimeout: defaultHTTPReadTimeout,
		statusCodes: []int{
			http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent,
		},
		method: http.MethodGet,
	}, nil
}

// Path returns the request path.
func (s HTTPStrategy) Path() string {
	return s.path
}

// Port returns the workload port the request is sent to.
func (s HTTPStrategy) Port() int {
	return s.port
}

// Method returns the request method.
func (s HTTPStrategy) Method() string {
	return s.method
}

// StatusCodes returns the accepted status codes.
func (s HTTPStrategy) StatusCodes() []int {
	return slices.Clone(s.statusCodes)
}

// TLS reports whether requests use https.
func (s HTTPStrategy) TLS() bool {
	return s.tls
}

// ReadTimeout returns the per-request timeout.
func (s HTTPStrategy) ReadTimeout() time.Duration {
	return s.readTimeout
}

// WithReadTimeout returns a copy with a different per-request timeout.
func (s HTTPStrategy) WithReadTimeout(timeout time.Duration) HTTPStrategy {
	s.readTimeout = timeout

	return s
}

// ForStatusCode returns a copy that accepts only code.
func (s HTTPStrategy) ForStatusCode(code int) HTTPStrategy {
	s.statusCodes = []int{code}

	return s
}

// ForStatusCodes returns a copy that accepts only codes.
func (s HTTPStrategy) ForStatusCodes(codes ...int) HTTPStrategy {
	s.statusCodes = slices.Clone(codes)

	return s
}

// WithMethod returns a copy that sends method instead of GET.
func (s HTTPStrategy) WithMethod(method string) HTTPStrategy {
	s.method = strings.ToUpper(method)

	return s
}

// UsingTLS returns a copy that uses https.
func (s HTTPStrategy) UsingTLS() HTTPStrategy {
	s.tls = true

	return s
}

// WithInsecureSkipVerify returns a copy that uses https without verifying the
// server certificate. Test clusters commonly serve self-signed certificates.
func (s HTTPStrategy) WithInsecureSkipVerify() HTTPStrategy {
	s.tls = true
	s.insecure = true

	return s
}

// WithHeader returns a copy that sends an additional request header.
func (s HTTPStrategy) WithHeader(key, value string) HTTPStrategy {
	header := s.header.Clone()
	if header == nil {
		header = http.Header{}
	}

	header.Add(key, value)
	s.header = header

	return s
}

// WaitUntilReady implements Strategy.
func (s HTTPStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	client := s.client()
	defer client.CloseIdleConnections()

	var (
		lastURL    string
		lastStatus int
	)

	return run(ctx, target, probe{
		kind:        "http",
		description: fmt.Sprintf("HTTP %s %s on port %d", s.method, s.path, s.port),
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check: func(ctx context.Context) (bool, error) {
			address, err := externalAddress(ctx, target, s.port)
			if err != nil {
				return false, err
			}

			lastURL = s.scheme() + "://" + address + s.path

			status, err := s.do(ctx, client, lastURL)
			if err != nil {
				return false, err
			}

			lastStatus = status

			return slices.Contains(s.statusCodes, status), nil
		},
		detail: func() string {
			switch {
			case lastURL == "":
				return "external address was never resolved"
			case lastStatus == 0:
				return "no response from " + lastURL
			default:
				return fmt.Sprintf("last status %d from %s, accepted %v", lastStatus, lastURL, s.statusCodes)
			}
		},
	})
}

func (s HTTPStrategy) do(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, s.method, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	for key, values := range s.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", s.method, url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (s HTTPStrategy) client() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib invariant

	if s.insecure {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // explicitly requested for self-signed test endpoints
			MinVersion:         tls.VersionTLS12,
		}
	}

	return &http.Client{
		Timeout:   s.readTimeout,
		Transport: transport,
	}
}

func (s HTTPStrategy) scheme() string {
	if s.tls {
		return "https"
	}

	return "http"
}

// WithTimeout implements Strategy.
func (s HTTPStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s HTTPStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s HTTPStrategy) String() string {
	return fmt.Sprintf("HTTP[%s %s://*:%d%s, timeout=%s]",
		s.method, s.scheme(), s.port, s.path, formatDuration(s.timeout))
}
