package minwage

import "time"

// merge picks, for every record of next, either that record (when it is
// already effective at t) or the current record for the same prefecture.
// The result follows the order of next.
func merge(current, next Dataset, t time.Time, loc *time.Location) (Dataset, error) {
	var byPref map[Prefecture]Wage

	merged := make([]Wage, 0, len(next.MinimumWages))
	for _, nw := range next.MinimumWages {
		if effectiveAt(t, nw.EffectiveStartDate, loc) {
			merged = append(merged, nw)
			continue
		}
		if byPref == nil {
			byPref = current.index()
		}
		cw, ok := byPref[nw.PrefectureName]
		if !ok {
			return Dataset{}, &InconsistencyError{
				Prefecture:         nw.PrefectureName,
				EffectiveStartDate: nw.EffectiveStartDate,
			}
		}
		merged = append(merged, cw)
	}
	return Dataset{MinimumWages: merged}, nil
}

// resolve loads the datasets needed to answer a query at t.
// With forceNext the next dataset is returned as is and current is not read.
func (s *Source) resolve(forceNext bool, t time.Time) (Dataset, error) {
	if forceNext {
		return s.load(Next)
	}

	current, err := s.load(Current)
	if err != nil {
		return Dataset{}, err
	}
	next, err := s.load(Next)
	if err != nil {
		return Dataset{}, err
	}

	if t.IsZero() {
		t = s.now()
	}
	merged, err := merge(current, next, t, s.loc)
	if err != nil {
		s.logger.Printf("resolve at %s: %v", t.In(s.loc).Format(time.RFC3339), err)
		return Dataset{}, err
	}
	return merged, nil
}
