package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/planner/internal/client/models"
)

// clearValue typed into an optional field removes its current value.
const clearValue = "-"

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

// form prompts for record fields. An empty answer keeps the current value.
// The first error sticks and turns every later prompt into a no-op.
type form struct {
	r   *bufio.Reader
	w   io.Writer
	err error
}

func (f *form) ask(label, current string) (string, bool) {
	if f.err != nil {
		return "", false
	}
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	s, err := getSimpleText(f.r, prompt, f.w)
	if err != nil {
		f.err = err
		return "", false
	}
	return s, s != ""
}

func (f *form) text(label string, dst *string) {
	if s, ok := f.ask(label, *dst); ok {
		if s == clearValue {
			s = ""
		}
		*dst = s
	}
}

// required is text that must end up non-empty.
func (f *form) required(label string, dst *string) {
	f.text(label, dst)
	if f.err == nil && strings.TrimSpace(*dst) == "" {
		f.err = fmt.Errorf("%s is required", strings.ToLower(label))
	}
}

func (f *form) multiline(label string, dst *string) {
	if f.err != nil {
		return
	}
	if *dst != "" {
		fmt.Fprintf(f.w, "Current %s:\n%s\n", strings.ToLower(label), *dst)
	}
	s, err := GetMultiline(f.r, label, f.w)
	if err != nil {
		f.err = err
		return
	}
	if s != "" {
		*dst = s
	}
}

func (f *form) status(dst *models.Status) {
	s, ok := f.ask("Status (active/inactive)", string(dst.OrDefault()))
	if !ok {
		*dst = dst.OrDefault()
		return
	}
	st := models.Status(strings.ToLower(s))
	if !st.Valid() {
		f.err = fmt.Errorf("invalid status %q", s)
		return
	}
	*dst = st
}

func (f *form) date(label string, dst **time.Time) {
	s, ok := f.ask(label+" (YYYY-MM-DD [HH:MM])", formatTime(*dst))
	if !ok {
		return
	}
	if s == clearValue {
		*dst = nil
		return
	}
	t, err := parseTime(s)
	if err != nil {
		f.err = err
		return
	}
	*dst = &t
}

func (f *form) ref(label string, dst **int64) {
	s, ok := f.ask(label+" (local id)", formatRef(*dst))
	if !ok {
		return
	}
	if s == clearValue {
		*dst = nil
		return
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		f.err = fmt.Errorf("invalid %s %q", strings.ToLower(label), s)
		return
	}
	*dst = &id
}

func (f *form) float(label string, dst **float64) {
	cur := ""
	if *dst != nil {
		cur = strconv.FormatFloat(**dst, 'f', -1, 64)
	}
	s, ok := f.ask(label, cur)
	if !ok {
		return
	}
	if s == clearValue {
		*dst = nil
		return
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.err = fmt.Errorf("invalid %s %q", strings.ToLower(label), s)
		return
	}
	*dst = &v
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	if h, m, _ := t.Clock(); h == 0 && m == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04")
}

func formatRef(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
