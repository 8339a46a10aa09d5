package delivery

import (
	"strings"

	"github.com/phambaophuc/image-delivery/internal/models"
)

// ParseResizeRequest reads w, h, r, q and f. Numeric values that do not parse
// are treated as absent. Parsed values are kept as given, zero and negative
// included; see models.ResizeRequest for how each is interpreted.
func ParseResizeRequest(params map[string]string) *models.ResizeRequest {
	req := &models.ResizeRequest{
		Width:   intParam(params["w"]),
		Height:  intParam(params["h"]),
		Radius:  intParam(params["r"]),
		Quality: models.DefaultQuality,
		Format:  models.ParseOutputFormat(params["f"]),
	}
	if q, ok := parseLeadingInt(params["q"]); ok {
		req.Quality = q
	}
	return req
}

func intParam(value string) *int {
	n, ok := parseLeadingInt(value)
	if !ok {
		return nil
	}
	return &n
}

// parseLeadingInt parses an optionally signed run of base-10 digits at the
// start of value and ignores whatever follows, so "120px" is 120.
func parseLeadingInt(value string) (int, bool) {
	s := strings.TrimSpace(value)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(s[digits]-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
