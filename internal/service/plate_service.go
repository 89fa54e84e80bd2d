package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"plate-service/internal/client"
	"plate-service/internal/config"
	"plate-service/internal/fuzzy"
	"plate-service/internal/importer"
	"plate-service/internal/model"
	"plate-service/internal/repository"
	"plate-service/internal/utils"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrUpstream         = errors.New("plate list source unavailable")
)

// DemoPlates are searched while no collection is loaded.
var DemoPlates = []string{
	"XYZ999",
	"Q0Q-8B8",
	"ABC I23",
	"AB0-123",
	"ABC123",
	"E0CKICF",
}

// PlateService owns the in-memory plate collection. It is the only
// application state: HTTP handlers and the terminal UI share one instance.
type PlateService struct {
	repo      *repository.PlateRepository
	fetcher   *client.PlateListClient
	log       zerolog.Logger
	retention time.Duration
	sourceURL string
	now       func() time.Time

	mu       sync.RWMutex
	entries  []model.PlateEntry
	loadedAt *time.Time
	source   string
}

type Option func(*PlateService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *PlateService) {
		s.now = now
	}
}

func NewPlateService(
	repo *repository.PlateRepository,
	fetcher *client.PlateListClient,
	cfg config.PlatesConfig,
	log zerolog.Logger,
	opts ...Option,
) *PlateService {
	s := &PlateService{
		repo:      repo,
		fetcher:   fetcher,
		log:       log,
		retention: cfg.Retention,
		sourceURL: cfg.SourceURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the saved collection. Expired or unreadable state is dropped
// and the service starts empty.
func (s *PlateService) Restore(ctx context.Context) {
	collection, entries, err := s.loadSaved(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding saved plates")
		if clearErr := s.repo.Clear(ctx); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear saved plates")
		}
		s.reset()
		return
	}
	if collection == nil {
		s.reset()
		return
	}

	loadedAt := collection.LoadedAt
	s.mu.Lock()
	s.entries = entries
	s.loadedAt = &loadedAt
	s.source = collection.Source
	s.mu.Unlock()

	s.log.Info().
		Int("plates", len(entries)).
		Time("loaded_at", loadedAt).
		Msg("restored saved plates")
}

var errExpired = errors.New("saved plates expired")

func (s *PlateService) loadSaved(ctx context.Context) (*model.PlateCollection, []model.PlateEntry, error) {
	collection, err := s.repo.GetLatest(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load collection: %w", err)
	}
	if collection == nil {
		return nil, nil, nil
	}
	if s.now().Sub(collection.SavedAt) > s.retention {
		return nil, nil, errExpired
	}

	entries, err := s.repo.ListEntries(ctx, collection.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load entries: %w", err)
	}
	return collection, entries, nil
}

type ImportInput struct {
	Text string
	// HTML marks Text as a page whose first table holds the plates.
	HTML bool
	// Column is the 1-based choice among several plate-like columns.
	Column int
}

type RemoteImportInput struct {
	URL    string
	Column int
}

type Status struct {
	Count    int        `json:"count"`
	LoadedAt *time.Time `json:"loaded_at"`
	Source   string     `json:"source,omitempty"`
	Demo     bool       `json:"demo"`
}

type ImportResult struct {
	Status
	Format importer.Format  `json:"format"`
	Column *importer.Column `json:"column,omitempty"`
}

// Import replaces the collection with plates parsed from pasted text.
func (s *PlateService) Import(ctx context.Context, principal model.Principal, input ImportInput) (*ImportResult, error) {
	if !principal.CanManagePlates() {
		return nil, ErrPermissionDenied
	}

	parsed, err := parse([]byte(input.Text), input.HTML, input.Column)
	if err != nil {
		return nil, importError(err)
	}
	return s.replace(ctx, "paste", parsed)
}

// ImportRemote downloads a plate list and replaces the collection with it.
// HTML pages are read through their first table.
func (s *PlateService) ImportRemote(ctx context.Context, principal model.Principal, input RemoteImportInput) (*ImportResult, error) {
	if !principal.CanManagePlates() {
		return nil, ErrPermissionDenied
	}

	rawURL := strings.TrimSpace(input.URL)
	if rawURL == "" {
		rawURL = s.sourceURL
	}
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	list, err := s.fetcher.Fetch(ctx, rawURL)
	if errors.Is(err, client.ErrInvalidURL) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	parsed, err := parse(list.Body, list.IsHTML(), input.Column)
	if err != nil {
		return nil, importError(err)
	}
	return s.replace(ctx, rawURL, parsed)
}

func parse(body []byte, html bool, column int) (*importer.Result, error) {
	if html {
		return importer.ParseHTML(bytes.NewReader(body), column)
	}
	return importer.ParseText(string(body), column)
}

func importError(err error) error {
	var ambiguous *importer.AmbiguousColumnError
	switch {
	case errors.As(err, &ambiguous):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, importer.ErrEmpty),
		errors.Is(err, importer.ErrInvalidColumnChoice),
		errors.Is(err, importer.ErrNoTable):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}

func (s *PlateService) replace(ctx context.Context, source string, parsed *importer.Result) (*ImportResult, error) {
	now := s.now()
	collection := &model.PlateCollection{
		Source:   source,
		LoadedAt: now,
		SavedAt:  now,
	}
	if err := s.repo.Replace(ctx, collection, parsed.Entries); err != nil {
		return nil, fmt.Errorf("save plates: %w", err)
	}

	s.mu.Lock()
	s.entries = parsed.Entries
	s.loadedAt = &now
	s.source = source
	s.mu.Unlock()

	s.log.Info().
		Int("plates", len(parsed.Entries)).
		Str("format", string(parsed.Format)).
		Str("source", source).
		Msg("plates imported")

	return &ImportResult{
		Status: s.Status(),
		Format: parsed.Format,
		Column: parsed.Column,
	}, nil
}

// Clear drops the saved and in-memory collection.
func (s *PlateService) Clear(ctx context.Context, principal model.Principal) error {
	if !principal.CanManagePlates() {
		return ErrPermissionDenied
	}
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear plates: %w", err)
	}
	s.reset()
	s.log.Info().Str("user_id", principal.UserID).Msg("plates cleared")
	return nil
}

func (s *PlateService) reset() {
	s.mu.Lock()
	s.entries = nil
	s.loadedAt = nil
	s.source = ""
	s.mu.Unlock()
}

func (s *PlateService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{Count: len(s.entries), Source: s.source, Demo: len(s.entries) == 0}
	if s.loadedAt != nil {
		t := *s.loadedAt
		st.LoadedAt = &t
	}
	return st
}

type SearchHit struct {
	Key         string           `json:"key"`
	Plate       string           `json:"plate"`
	Highlighted string           `json:"highlighted"`
	Tags        []fuzzy.Tag      `json:"tags"`
	Summary     string           `json:"summary,omitempty"`
	Rows        []model.PlateRow `json:"rows,omitempty"`
}

type SearchResult struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
	// NoResults is set when a non-blank query matched nothing.
	NoResults bool `json:"no_results"`
}

// Search matches query against every known plate, most recently imported
// first. Plates that do not match are left out.
func (s *PlateService) Search(query string) SearchResult {
	entries := s.snapshot()

	hits := make([]SearchHit, 0)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		res := fuzzy.Match(e.Plate, query)
		if !res.Matched {
			continue
		}
		hits = append(hits, SearchHit{
			Key:         e.Key,
			Plate:       e.Plate,
			Highlighted: res.Highlighted,
			Tags:        res.Tags,
			Summary:     importer.VehicleSummary(e.Rows),
			Rows:        e.Rows,
		})
	}

	return SearchResult{
		Query:     query,
		Results:   hits,
		NoResults: len(hits) == 0 && strings.TrimSpace(query) != "",
	}
}

func (s *PlateService) snapshot() []model.PlateEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) > 0 {
		return s.entries
	}
	return demoEntries()
}

func demoEntries() []model.PlateEntry {
	entries := make([]model.PlateEntry, 0, len(DemoPlates))
	for i, p := range DemoPlates {
		entries = append(entries, model.PlateEntry{Position: i, Key: utils.PlateKey(p), Plate: p})
	}
	return entries
}
