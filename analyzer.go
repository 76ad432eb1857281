package citybike

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Stage identifies how far the pipeline has progressed. Stages advance
// strictly forward: Raw → Cleaned → Built → Computed.
type Stage int

const (
	StageRaw Stage = iota
	StageCleaned
	StageBuilt
	StageComputed
)

func (s Stage) String() string {
	switch s {
	case StageRaw:
		return "raw"
	case StageCleaned:
		return "cleaned"
	case StageBuilt:
		return "built"
	case StageComputed:
		return "computed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Rejection is one raw record dropped during cleaning or entity
// construction, with the reason.
type Rejection struct {
	Kind   Kind
	ID     string
	Reason string
}

// System is the bike-share analytics engine. It owns the entity collections
// of one run; queries are only answerable once the compute stage has
// completed.
type System struct {
	conf    *Config
	factory *Factory

	raw     Dataset
	cleaned Dataset

	stations    map[string]*Station
	bikes       map[string]*Bike
	users       map[string]*User
	trips       []*Trip
	maintenance []*MaintenanceRecord

	rejections []Rejection
	stage      Stage
	cache      *gocache.Cache
}

// NewSystem creates a System over a raw dataset. A nil conf selects the
// default tariff.
func NewSystem(data Dataset, conf *Config) (*System, error) {
	if conf == nil {
		conf = DefaultConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &System{
		conf:     conf,
		factory:  NewFactory(),
		raw:      data,
		stations: make(map[string]*Station),
		bikes:    make(map[string]*Bike),
		users:    make(map[string]*User),
		stage:    StageRaw,
		cache:    gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Stage returns the current pipeline stage.
func (s *System) Stage() Stage {
	return s.stage
}

// Rejections returns the rejection report accumulated so far.
func (s *System) Rejections() []Rejection {
	out := make([]Rejection, len(s.rejections))
	copy(out, s.rejections)
	return out
}

// Trips returns the enriched trip collection for downstream consumers such
// as histogram rendering. Available once the compute stage has completed.
func (s *System) Trips() ([]*Trip, error) {
	if err := s.queryable("Trips"); err != nil {
		return nil, err
	}
	out := make([]*Trip, len(s.trips))
	copy(out, s.trips)
	return out, nil
}

// Run carries out the whole pipeline in order: Clean, Build, Compute.
func (s *System) Run(ctx context.Context) error {
	if err := s.Clean(); err != nil {
		return err
	}
	if err := s.Build(); err != nil {
		return err
	}
	return s.Compute(ctx)
}

// Clean removes duplicate raw records and rows missing required values.
// Duplicates are detected by identifier, falling back to the full row for
// records without one; the first occurrence survives. Dropped rows land in
// the rejection report.
func (s *System) Clean() error {
	if s.stage != StageRaw {
		return &StageOrderError{Op: "Clean", Stage: s.stage, Required: StageRaw}
	}

	stations, err := s.cleanSet(s.raw.Stations, KindStation, FieldStationID)
	if err != nil {
		return err
	}
	trips, err := s.cleanSet(s.raw.Trips, KindTrip, FieldTripID)
	if err != nil {
		return err
	}
	maintenance, err := s.cleanSet(s.raw.Maintenance, KindMaintenance, FieldRecordID)
	if err != nil {
		return err
	}

	s.cleaned = Dataset{Stations: stations, Trips: trips, Maintenance: maintenance}
	s.stage = StageCleaned
	return nil
}

func (s *System) cleanSet(rows []Record, kind Kind, idField string) ([]Record, error) {
	required, err := s.factory.Required(kind)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rows))
	out := make([]Record, 0, len(rows))

	for _, rec := range rows {
		key := strings.TrimSpace(rec[idField])
		if key == "" {
			key = rowKey(rec)
		}
		if seen[key] {
			s.reject(kind, rec[idField], "duplicate record")
			continue
		}
		seen[key] = true

		if missing := firstMissing(rec, required); missing != "" {
			s.reject(kind, rec[idField], fmt.Sprintf("required field %s is missing", missing))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// rowKey serializes a record deterministically so byte-identical rows
// without an identifier still collapse to one occurrence.
func rowKey(rec Record) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(rec[k])
		b.WriteByte('\x1f')
	}
	return b.String()
}

func firstMissing(rec Record, required []string) string {
	for _, field := range required {
		if strings.TrimSpace(rec[field]) == "" {
			return field
		}
	}
	return ""
}

// Build constructs the entity collections from the cleaned record set.
// Bikes and users are derived from the trip rows, where the raw feed embeds
// them; the first occurrence defines the entity. Trips are built last so
// their references can be resolved, and a trip whose station, bike or user
// reference does not resolve is rejected.
func (s *System) Build() error {
	if s.stage != StageCleaned {
		return &StageOrderError{Op: "Build", Stage: s.stage, Required: StageCleaned}
	}

	for _, rec := range s.cleaned.Stations {
		ent, err := s.factory.Create(rec, KindStation)
		if err != nil {
			if err := s.rejectOrFail(KindStation, rec[FieldStationID], err); err != nil {
				return err
			}
			continue
		}
		station := ent.(*Station)
		s.stations[station.ID] = station
	}

	for _, rec := range s.cleaned.Trips {
		if id := strings.TrimSpace(rec[FieldBikeID]); id != "" && s.bikes[id] == nil {
			// a failed bike build is reported by the trip build below
			if ent, err := s.factory.Create(rec, KindBike); err == nil {
				bike := ent.(*Bike)
				s.bikes[bike.ID] = bike
			}
		}
		if id := strings.TrimSpace(rec[FieldUserID]); id != "" && s.users[id] == nil {
			if ent, err := s.factory.Create(rec, KindUser); err == nil {
				user := ent.(*User)
				s.users[user.ID] = user
			}
		}
	}

	for _, rec := range s.cleaned.Trips {
		ent, err := s.factory.Create(rec, KindTrip)
		if err != nil {
			if err := s.rejectOrFail(KindTrip, rec[FieldTripID], err); err != nil {
				return err
			}
			continue
		}
		trip := ent.(*Trip)
		if reason := s.unresolved(trip); reason != "" {
			s.reject(KindTrip, trip.ID, reason)
			continue
		}
		s.trips = append(s.trips, trip)
	}

	for _, rec := range s.cleaned.Maintenance {
		ent, err := s.factory.Create(rec, KindMaintenance)
		if err != nil {
			if err := s.rejectOrFail(KindMaintenance, rec[FieldRecordID], err); err != nil {
				return err
			}
			continue
		}
		s.maintenance = append(s.maintenance, ent.(*MaintenanceRecord))
	}

	s.applyMaintenanceStatus()

	s.stage = StageBuilt
	return nil
}

// unresolved checks the trip's weak references against the collections and
// names the first missing one.
func (s *System) unresolved(t *Trip) string {
	switch {
	case s.stations[t.StartStationID] == nil:
		return fmt.Sprintf("start station %s not found", t.StartStationID)
	case s.stations[t.EndStationID] == nil:
		return fmt.Sprintf("end station %s not found", t.EndStationID)
	case s.bikes[t.BikeID] == nil:
		return fmt.Sprintf("bike %s not found", t.BikeID)
	case s.users[t.UserID] == nil:
		return fmt.Sprintf("user %s not found", t.UserID)
	}
	return ""
}

// applyMaintenanceStatus marks a bike as under maintenance when it has a
// maintenance event dated after its last observed trip.
func (s *System) applyMaintenanceStatus() {
	lastTrip := make(map[string]int64, len(s.bikes))
	for _, t := range s.trips {
		if end := t.EndTime.Unix(); end > lastTrip[t.BikeID] {
			lastTrip[t.BikeID] = end
		}
	}
	for _, rec := range s.maintenance {
		bike := s.bikes[rec.BikeID]
		if bike == nil || bike.Status == BikeRetired {
			continue
		}
		if rec.Date.Unix() > lastTrip[bike.ID] {
			bike.Status = BikeMaintenance
		}
	}
}

func (s *System) reject(kind Kind, id, reason string) {
	s.rejections = append(s.rejections, Rejection{Kind: kind, ID: strings.TrimSpace(id), Reason: reason})
}

// rejectOrFail records validation failures and propagates everything else,
// configuration errors in particular.
func (s *System) rejectOrFail(kind Kind, id string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.reject(kind, id, fmt.Sprintf("%s: %s", ve.Field, ve.Reason))
		return nil
	}
	return err
}

// queryable guards the read-only queries behind the compute barrier.
func (s *System) queryable(op string) error {
	if s.stage != StageComputed {
		return &StageOrderError{Op: op, Stage: s.stage, Required: StageComputed}
	}
	return nil
}

// cached returns the memoized result of a query, computing it on first use.
// Queries are read-only and repeatable, so a cached result stays valid until
// the next compute pass flushes the cache.
func (s *System) cached(key string, build func() (interface{}, error)) (interface{}, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	v, err := build()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, v, gocache.DefaultExpiration)
	return v, nil
}
