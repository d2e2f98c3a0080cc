package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/weekgrid/pkg/timetable"
)

// Keyer generates cache keys for each kind of cached entry.
type Keyer interface {
	SessionsKey(source string, sel timetable.WeekSelection) string
	PeriodsKey(source string) string
	WeeksKey(source, semesterID string) string
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	View        string  `json:"view"`
	Format      string  `json:"format"`
	Grouping    string  `json:"grouping,omitempty"`
	OffsetStep  float64 `json:"offset_step,omitempty"`
	OpacityStep float64 `json:"opacity_step,omitempty"`
	FullWidth   float64 `json:"full_width,omitempty"`
}

// DefaultKeyer produces flat, human-readable keys for data entries and
// hashed keys for artifacts.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SessionsKey keys one week's session list.
func (DefaultKeyer) SessionsKey(source string, sel timetable.WeekSelection) string {
	return fmt.Sprintf("sessions:%s:%s:%s", source, sel.SemesterID, sel.WeekID)
}

// PeriodsKey keys the period table of a source.
func (DefaultKeyer) PeriodsKey(source string) string {
	return "periods:" + source
}

// WeeksKey keys the week listing of a semester.
func (DefaultKeyer) WeeksKey(source, semesterID string) string {
	return fmt.Sprintf("weeks:%s:%s", source, semesterID)
}

// ArtifactKey keys a rendered artifact by input hash and render options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, e.g. per deployment
// ("staging:") when several environments share one Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer if nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SessionsKey(source string, sel timetable.WeekSelection) string {
	return k.prefix + k.inner.SessionsKey(source, sel)
}

func (k *ScopedKeyer) PeriodsKey(source string) string {
	return k.prefix + k.inner.PeriodsKey(source)
}

func (k *ScopedKeyer) WeeksKey(source, semesterID string) string {
	return k.prefix + k.inner.WeeksKey(source, semesterID)
}

func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// hashKey renders prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash computes the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
