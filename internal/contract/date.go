package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
)

const DateLayout = "2006-01-02"

// Date is a calendar date on the wire. It marshals as YYYY-MM-DD and accepts
// either that form or a full RFC 3339 timestamp, whose time of day is
// dropped.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: domain.CalendarDate(t)}
}

// ParseDate reads YYYY-MM-DD, or an RFC 3339 instant converted to local
// time, as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD or RFC 3339", s)}
	}
	// A client's local midnight arrives as an instant; take the local day.
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &domain.ValidationError{Field: "date", Reason: "must be a string"}
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
