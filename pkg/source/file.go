package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// PeriodsFile is the period table file name inside a FileSource directory.
const PeriodsFile = "periods.toml"

// FileSource reads weeks from a directory tree:
//
//	<dir>/periods.toml          optional; default table when absent
//	<dir>/<semester>/<week>.json
//	<dir>/<semester>/<week>.csv
//
// JSON files hold an array in the portal's REST shape. CSV files use
// snake_case headers matching the ClassSession csv tags. Rows without an
// id get a UUID derived from the file path and row number, so repeated
// loads yield the same IDs.
type FileSource struct {
	dir string
}

// NewFileSource returns a source rooted at dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s is not a directory", dir)
	}
	return &FileSource{dir: dir}, nil
}

// Name returns "file".
func (*FileSource) Name() string { return KindFile }

// Dir returns the root directory.
func (f *FileSource) Dir() string { return f.dir }

// Sessions loads <semester>/<week>.json, falling back to .csv.
func (f *FileSource) Sessions(ctx context.Context, sel timetable.WeekSelection) ([]timetable.ClassSession, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	semDir := filepath.Join(f.dir, sel.SemesterID)
	if _, err := os.Stat(semDir); err != nil {
		return nil, errors.New(errors.ErrCodeSemesterNotFound, "semester %q not found", sel.SemesterID)
	}

	base := filepath.Join(semDir, sel.WeekID)
	var (
		sessions []timetable.ClassSession
		path     string
		err      error
	)
	switch {
	case fileExists(base + ".json"):
		path = base + ".json"
		sessions, err = readJSONWeek(path)
	case fileExists(base + ".csv"):
		path = base + ".csv"
		sessions, err = ReadCSVWeek(path)
	default:
		return nil, errors.New(errors.ErrCodeWeekNotFound, "week %q not found in %s", sel.WeekID, sel.SemesterID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return assignIDs(path, sessions), nil
}

// Periods reads periods.toml, or returns the default table when the file
// does not exist.
func (f *FileSource) Periods(ctx context.Context) (*timetable.PeriodTable, error) {
	path := filepath.Join(f.dir, PeriodsFile)
	if !fileExists(path) {
		return timetable.DefaultPeriodTable(), nil
	}
	return ReadPeriodsFile(path)
}

// Weeks lists the week files of a semester, sorted by name.
func (f *FileSource) Weeks(ctx context.Context, semesterID string) ([]string, error) {
	if err := errors.ValidateIdentifier("semester", semesterID); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(f.dir, semesterID))
	if err != nil {
		return nil, errors.New(errors.ErrCodeSemesterNotFound, "semester %q not found", semesterID)
	}
	var weeks []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".json" && ext != ".csv") {
			continue
		}
		week := strings.TrimSuffix(e.Name(), ext)
		if !slices.Contains(weeks, week) {
			weeks = append(weeks, week)
		}
	}
	slices.Sort(weeks)
	return weeks, nil
}

// ReadPeriodsFile decodes a TOML period table:
//
//	[[period]]
//	period = 1
//	start = "07:00"
//	end = "07:50"
func ReadPeriodsFile(path string) (*timetable.PeriodTable, error) {
	var doc struct {
		Period []timetable.PeriodTime `toml:"period"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return timetable.NewPeriodTable(doc.Period)
}

// ReadCSVWeek decodes a CSV week file with gocsv.
func ReadCSVWeek(path string) ([]timetable.ClassSession, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []timetable.ClassSession
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteCSVWeek writes sessions as a CSV week file.
func WriteCSVWeek(path string, sessions []timetable.ClassSession) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&sessions, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func readJSONWeek(path string) ([]timetable.ClassSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sessions []timetable.ClassSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func assignIDs(path string, sessions []timetable.ClassSession) []timetable.ClassSession {
	for i := range sessions {
		if sessions[i].ID == "" {
			seed := path + "#" + strconv.Itoa(i)
			sessions[i].ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
		}
	}
	if sessions == nil {
		sessions = []timetable.ClassSession{}
	}
	return sessions
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var _ Source = (*FileSource)(nil)
