package source

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/httputil"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// HTTPSource reads from the portal's REST API:
//
//	GET {base}/semesters/{semester}/weeks/{week}/sessions  -> []ClassSession
//	GET {base}/semesters/{semester}/weeks                  -> []string
//	GET {base}/periods                                     -> []PeriodTime
type HTTPSource struct {
	base   string
	client *httputil.Client
}

// NewHTTPSource returns a source for the API at baseURL. A nil client
// uses httputil defaults.
func NewHTTPSource(baseURL string, client *httputil.Client) (*HTTPSource, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if client == nil {
		client = httputil.NewClient()
	}
	return &HTTPSource{base: strings.TrimRight(baseURL, "/"), client: client}, nil
}

// Name returns "http".
func (*HTTPSource) Name() string { return KindHTTP }

// Sessions fetches one week.
func (h *HTTPSource) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	u := h.base + "/semesters/" + url.PathEscape(sel.SemesterID) + "/weeks/" + url.PathEscape(sel.WeekID) + "/sessions"
	var sessions []timetable.ClassSession
	if err := h.client.GetJSON(ctx, u, &sessions); err != nil {
		return nil, mapHTTPError(err, errors.ErrCodeWeekNotFound, "week %s", sel)
	}
	if sessions == nil {
		sessions = []timetable.ClassSession{}
	}
	return sessions, nil
}

// Periods fetches and validates the period table.
func (h *HTTPSource) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	var entries []timetable.PeriodTime
	if err := h.client.GetJSON(ctx, h.base+"/periods", &entries); err != nil {
		return nil, mapHTTPError(err, errors.ErrCodeNotFound, "period table")
	}
	return timetable.NewPeriodTable(entries)
}

// Weeks fetches the week list of a semester.
func (h *HTTPSource) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	if err := errors.ValidateIdentifier("semester", semesterID); err != nil {
		return nil, err
	}
	var weeks []string
	if err := h.client.GetJSON(ctx, h.base+"/semesters/"+url.PathEscape(semesterID)+"/weeks", &weeks); err != nil {
		return nil, mapHTTPError(err, errors.ErrCodeSemesterNotFound, "semester %s", semesterID)
	}
	return weeks, nil
}

func mapHTTPError(err error, notFound errors.Code, format string, args ...any) error {
	switch {
	case stderrors.Is(err, httputil.ErrNotFound):
		return errors.Wrap(notFound, err, format+" not found", args...)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch "+format, args...)
	case stderrors.Is(err, context.Canceled):
		return err
	case stderrors.Is(err, httputil.ErrNetwork):
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch "+format, args...)
	default:
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode "+format, args...)
	}
}

var _ Source = (*HTTPSource)(nil)
