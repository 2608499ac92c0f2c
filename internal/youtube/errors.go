package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrQuotaExceeded means the upstream rejected the call because the daily
// quota is exhausted. Unlike transport failures it must propagate to the
// caller so it can surface a retry-tomorrow message instead of partial data.
var ErrQuotaExceeded = errors.New("youtube: daily quota exceeded")

// ErrUnavailable covers transport and auth failures; callers skip the
// affected batch and return partial results.
var ErrUnavailable = errors.New("youtube: upstream unavailable")

// apiErrorBody is the error envelope returned by the Data API.
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// classifyAPIError maps an upstream error response onto the taxonomy:
// quota exhaustion is distinct, everything else is ErrUnavailable.
func classifyAPIError(status int, body []byte) error {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, e := range parsed.Error.Errors {
			switch e.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return fmt.Errorf("%w: %s", ErrQuotaExceeded, parsed.Error.Message)
			}
		}
		if parsed.Error.Message != "" {
			return fmt.Errorf("%w: HTTP %d: %s", ErrUnavailable, status, parsed.Error.Message)
		}
	}

	// 403 without a parseable reason is ambiguous (could be auth); only 429
	// is unambiguously quota exhaustion.
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: HTTP %d", ErrQuotaExceeded, status)
	}
	return fmt.Errorf("%w: HTTP %d", ErrUnavailable, status)
}
