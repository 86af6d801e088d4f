package resilience

import (
	"errors"
	"net"
	"net/http"
	"syscall"

	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/loanlens/loanlens/pkg/cloudparse"
)

// Anthropic signals overload with a non-standard status.
const statusOverloaded = 529

// Retryable reports whether an upstream call failure is worth retrying.
// API rejections from cloudparse and Anthropic are judged by status code;
// anything else is retried only on network-level failures.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	var parseErr *cloudparse.APIError
	if errors.As(err, &parseErr) {
		return RetryableStatus(parseErr.StatusCode)
	}

	var llmErr *sdk.Error
	if errors.As(err, &llmErr) {
		return RetryableStatus(llmErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}

// RetryableStatus reports whether an upstream HTTP status is worth
// retrying. Client errors other than timeout and rate limiting are not.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		statusOverloaded:
		return true
	}
	return false
}
