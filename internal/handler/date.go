package handler

import (
	"fmt"
	"strings"
	"time"
)

// jsonDate accepts either a plain date ("2026-06-01") or a full RFC 3339
// timestamp in request bodies. Clients send both shapes in practice; the
// stored value is whatever instant was given.
type jsonDate struct {
	time.Time
}

func (d *jsonDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t
	return nil
}
