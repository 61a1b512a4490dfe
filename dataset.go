package minwage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"time"
)

// Epoch names one of the two static datasets.
type Epoch string

const (
	// Current is the schedule presently in force.
	Current Epoch = "current"
	// Next is the schedule that takes effect from a known future date.
	Next Epoch = "next"
)

// path returns the dataset file name inside the data directory.
func (e Epoch) path() string { return string(e) + ".json" }

// Wage is one prefecture's minimum wage entry.
type Wage struct {
	PrefectureName     Prefecture
	HourlyWage         float64   // Yen per hour; decimal amounts are kept as is.
	EffectiveStartDate time.Time // In the source's reference location.

	// Extra holds any other fields of the source record, keyed by their
	// source name and left undecoded.
	Extra map[string]json.RawMessage
}

// IsZero reports whether w is the empty record returned on a miss.
func (w Wage) IsZero() bool {
	return w.PrefectureName == "" && w.HourlyWage == 0 && w.EffectiveStartDate.IsZero() && w.Extra == nil
}

// Dataset is an ordered collection of wage records, at most one per prefecture.
type Dataset struct {
	MinimumWages []Wage
}

// Find returns the first record for pref.
func (d Dataset) Find(pref Prefecture) (Wage, bool) {
	for _, w := range d.MinimumWages {
		if w.PrefectureName == pref {
			return w, true
		}
	}
	return Wage{}, false
}

// index maps each prefecture to its first record.
func (d Dataset) index() map[Prefecture]Wage {
	m := make(map[Prefecture]Wage, len(d.MinimumWages))
	for _, w := range d.MinimumWages {
		if _, dup := m[w.PrefectureName]; !dup {
			m[w.PrefectureName] = w
		}
	}
	return m
}

// collectionKeys are the accepted names of the top-level record list.
var collectionKeys = []string{"minimum_wages", "minimumWages"}

type fieldSetter func(w *Wage, raw json.RawMessage, loc *time.Location) error

// wageField names a record field and the source keys that fill it, in
// priority order. The first key present wins; any lower-priority key in
// the same record is kept in Extra.
type wageField struct {
	keys []string
	set  fieldSetter
}

// wageFields is the explicit source-to-record field mapping.
var wageFields = []wageField{
	{[]string{"prefecture_name", "prefectureName"}, setPrefecture},
	{[]string{"hourly_wage", "hourlyWage", "hourly_minimum_wage", "minimum_wage"}, setHourlyWage},
	{[]string{"effective_start_date", "effectiveStartDate"}, setEffectiveStartDate},
}

func setPrefecture(w *Wage, raw json.RawMessage, _ *time.Location) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("prefecture name: %w", err)
	}
	w.PrefectureName = Prefecture(s)
	return nil
}

func setHourlyWage(w *Wage, raw json.RawMessage, _ *time.Location) error {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("hourly wage: %w", err)
	}
	w.HourlyWage = n
	return nil
}

func setEffectiveStartDate(w *Wage, raw json.RawMessage, loc *time.Location) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("effective start date: %w", err)
	}
	t, err := parseEffectiveDate(s, loc)
	if err != nil {
		return err
	}
	w.EffectiveStartDate = t
	return nil
}

// decodeDataset parses a dataset document, normalizing field names
// through wageFields.
func decodeDataset(epoch Epoch, path string, data []byte, loc *time.Location) (Dataset, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return Dataset{}, malformed(epoch, path, "%v", err)
	}

	var list json.RawMessage
	for _, key := range collectionKeys {
		if v, ok := doc[key]; ok {
			list = v
			break
		}
	}
	if list == nil {
		return Dataset{}, malformed(epoch, path, "missing %q collection", collectionKeys[0])
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(list, &records); err != nil {
		return Dataset{}, malformed(epoch, path, "%v", err)
	}

	wages := make([]Wage, 0, len(records))
	for i, rec := range records {
		w, err := decodeWage(rec, loc)
		if err != nil {
			return Dataset{}, malformed(epoch, path, "record %d: %v", i, err)
		}
		wages = append(wages, w)
	}
	return Dataset{MinimumWages: wages}, nil
}

// decodeWage fills a record from its source keys. Field aliases are
// applied in wageFields order, so the result does not depend on key order.
func decodeWage(rec map[string]json.RawMessage, loc *time.Location) (Wage, error) {
	var w Wage
	used := make(map[string]bool, len(rec))
	for _, f := range wageFields {
		for _, key := range f.keys {
			raw, ok := rec[key]
			if !ok {
				continue
			}
			if err := f.set(&w, raw, loc); err != nil {
				return Wage{}, err
			}
			used[key] = true
			break
		}
	}
	for key, raw := range rec {
		if used[key] {
			continue
		}
		if w.Extra == nil {
			w.Extra = make(map[string]json.RawMessage)
		}
		w.Extra[key] = raw
	}
	return w, nil
}

// load reads and decodes one epoch's dataset. It never caches.
func (s *Source) load(epoch Epoch) (Dataset, error) {
	path := epoch.path()
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		s.logger.Printf("load %s: %v", epoch, err)
		return Dataset{}, unavailable(epoch, path, err)
	}
	ds, err := decodeDataset(epoch, path, data, s.loc)
	if err != nil {
		s.logger.Printf("load %s: %v", epoch, err)
		return Dataset{}, err
	}
	s.logger.Printf("loaded %d records from %s", len(ds.MinimumWages), path)
	return ds, nil
}
