// Package minwage resolves Japanese prefectural minimum wages (地域別最低賃金)
// for a given date.
//
// Two static JSON datasets back every lookup: "current", the schedule in
// force, and "next", the schedule announced for a future date. For each
// prefecture the next record wins once its effective start date has been
// reached; until then the current record is returned.
//
// All dates are compared in JST (Asia/Tokyo, UTC+9) regardless of the
// input timezone. Both files are re-read on every call.
//
// Basic usage with package-level functions, which read ./minimum-wages-jp:
//
//	w, ok, err := minwage.GetWage(minwage.Tokyo, false, time.Time{})
//
// For another data location, create a Source:
//
//	src := minwage.New(minwage.WithDataDir("/srv/data/minimum-wages-jp"))
//	all, err := src.GetAllWages(false, time.Now())
package minwage

import (
	"io"
	"io/fs"
	"log"
	"os"
	"time"
)

// DefaultDataDir is the data directory used when none is configured,
// relative to the working directory.
const DefaultDataDir = "minimum-wages-jp"

// Source answers wage queries against one pair of datasets.
// A Source holds no mutable state and is safe for concurrent use.
type Source struct {
	fsys   fs.FS
	loc    *time.Location
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithFS reads the datasets from fsys, which must contain current.json
// and next.json at its root.
func WithFS(fsys fs.FS) Option {
	return func(s *Source) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithDataDir reads the datasets from dir on the local file system.
func WithDataDir(dir string) Option {
	return func(s *Source) {
		if dir != "" {
			s.fsys = os.DirFS(dir)
		}
	}
}

// WithLocation sets the timezone effective dates are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Source) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock sets the function used when a query passes the zero time.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger that dataset loads are reported to.
// By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Source. Without options it reads DefaultDataDir in JST.
func New(opts ...Option) *Source {
	s := &Source{
		fsys:   os.DirFS(DefaultDataDir),
		loc:    jstZone,
		now:    time.Now,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// defaultSource is the Source used by the package-level functions.
var defaultSource = New()

// GetAllWages returns every prefecture's record in force at t.
// The zero t means now. With forceNext the next dataset is returned
// unmerged, whatever t is.
func (s *Source) GetAllWages(forceNext bool, t time.Time) (Dataset, error) {
	return s.resolve(forceNext, t)
}

// GetWage returns the record for pref in force at t, with the same
// forceNext and t semantics as GetAllWages.
//
// An empty pref fails with ErrInvalidArgument before any file is read.
// A pref with no record is not an error: GetWage returns the zero Wage
// and false.
func (s *Source) GetWage(pref Prefecture, forceNext bool, t time.Time) (Wage, bool, error) {
	if pref == "" {
		return Wage{}, false, ErrInvalidArgument
	}
	ds, err := s.resolve(forceNext, t)
	if err != nil {
		return Wage{}, false, err
	}
	w, ok := ds.Find(pref)
	return w, ok, nil
}

// --- Package-level convenience functions ---

// GetAllWages returns every prefecture's record in force at t.
func GetAllWages(forceNext bool, t time.Time) (Dataset, error) {
	return defaultSource.GetAllWages(forceNext, t)
}

// GetWage returns the record for pref in force at t.
func GetWage(pref Prefecture, forceNext bool, t time.Time) (Wage, bool, error) {
	return defaultSource.GetWage(pref, forceNext, t)
}
