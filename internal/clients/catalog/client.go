// Package catalog is the read-only client for the public D&D 5e reference
// API (dnd5eapi.co). It wraps the dnd5e-api library for races, classes and
// spells, and talks to the subclass endpoints directly since the library
// does not expose them.
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/greyweave/charsheet/internal/clients/catalog Client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"golang.org/x/sync/errgroup"

	"github.com/greyweave/charsheet/internal/errors"
)

const defaultBaseURL = "https://www.dnd5eapi.co/api/2014/"

// Client defines the catalog operations the rest of the application
// consumes. Every call is a pure read; failures map to NotFound or
// Unavailable so callers can treat them uniformly as "no data".
type Client interface {
	// ListRaces returns all races with full details.
	ListRaces(ctx context.Context) ([]*RaceData, error)

	// GetRace fetches one race by catalog ID (e.g. "dwarf").
	GetRace(ctx context.Context, raceID string) (*RaceData, error)

	// ListClasses returns all classes with full details.
	ListClasses(ctx context.Context) ([]*ClassData, error)

	// GetClass fetches one class by catalog ID (e.g. "wizard").
	GetClass(ctx context.Context, classID string) (*ClassData, error)

	// ListSubclasses returns the subclasses available to a class.
	ListSubclasses(ctx context.Context, classID string) ([]*SubclassData, error)

	// ListClassSpells returns spell references castable by a class.
	ListClassSpells(ctx context.Context, classID string) ([]*SpellRef, error)

	// ListSubclassSpells returns the spell references a subclass grants.
	// Subclasses without a spell list yield an empty slice, not an error.
	ListSubclassSpells(ctx context.Context, subclassID string) ([]*SpellRef, error)

	// GetSpell fetches one spell by catalog ID (e.g. "fireball").
	GetSpell(ctx context.Context, spellID string) (*SpellData, error)
}

// Config contains configuration options for the catalog client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to the public API).
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds).
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours).
	// Reference records are immutable snapshots, so a long TTL is safe.
	CacheTTL time.Duration
}

// Validate sets defaults for unset options.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	dnd5eClient dnd5e.Interface
	httpClient  *http.Client
	baseURL     string
}

// New creates a catalog client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return &client{
		// Cache wrapper keeps repeated catalog loads off the network.
		dnd5eClient: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
		httpClient:  httpClient,
		baseURL:     cfg.BaseURL,
	}, nil
}

// notFoundStatus is the untyped status error the dnd5e-api library returns
// for a missing resource. It exposes no error type to match on, so the
// message is the only signal separating a 404 from an outage.
const notFoundStatus = "unexpected status code: 404"

// wrapLookupError maps a single-resource lookup failure to NotFound (the
// ID doesn't exist) or Unavailable (anything else).
func wrapLookupError(err error, resource string) error {
	if strings.Contains(err.Error(), notFoundStatus) {
		return errors.NotFoundf("%s not found", resource)
	}
	return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get "+resource)
}

func (c *client) GetRace(_ context.Context, raceID string) (*RaceData, error) {
	if raceID == "" {
		return nil, errors.InvalidArgument("race ID is required")
	}

	race, err := c.dnd5eClient.GetRace(raceID)
	if err != nil {
		return nil, wrapLookupError(err, "race "+raceID)
	}
	return convertRace(race), nil
}

func (c *client) ListRaces(ctx context.Context) ([]*RaceData, error) {
	refs, err := c.dnd5eClient.ListRaces()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list races")
	}

	// References carry only key/name; fan out for the details the sheet
	// needs (speed, ability bonuses). Cached after the first session load.
	races := make([]*RaceData, len(refs))
	g, _ := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			race, err := c.dnd5eClient.GetRace(ref.Key)
			if err != nil {
				return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get race "+ref.Key)
			}
			races[i] = convertRace(race)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return races, nil
}

func (c *client) GetClass(_ context.Context, classID string) (*ClassData, error) {
	if classID == "" {
		return nil, errors.InvalidArgument("class ID is required")
	}

	class, err := c.dnd5eClient.GetClass(classID)
	if err != nil {
		return nil, wrapLookupError(err, "class "+classID)
	}
	return convertClass(class), nil
}

func (c *client) ListClasses(ctx context.Context) ([]*ClassData, error) {
	refs, err := c.dnd5eClient.ListClasses()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list classes")
	}

	classes := make([]*ClassData, len(refs))
	g, _ := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			class, err := c.dnd5eClient.GetClass(ref.Key)
			if err != nil {
				return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get class "+ref.Key)
			}
			classes[i] = convertClass(class)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return classes, nil
}

func (c *client) ListClassSpells(_ context.Context, classID string) ([]*SpellRef, error) {
	if classID == "" {
		return nil, errors.InvalidArgument("class ID is required")
	}

	refs, err := c.dnd5eClient.ListSpells(&dnd5e.ListSpellsInput{Class: classID})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list spells for class "+classID)
	}

	spells := make([]*SpellRef, len(refs))
	for i, ref := range refs {
		spells[i] = &SpellRef{ID: ref.Key, Name: ref.Name}
	}
	return spells, nil
}

func (c *client) GetSpell(_ context.Context, spellID string) (*SpellData, error) {
	if spellID == "" {
		return nil, errors.InvalidArgument("spell ID is required")
	}

	spell, err := c.dnd5eClient.GetSpell(spellID)
	if err != nil {
		return nil, wrapLookupError(err, "spell "+spellID)
	}
	return convertSpell(spell), nil
}
