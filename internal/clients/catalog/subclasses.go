package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/greyweave/charsheet/internal/errors"
)

// The dnd5e-api library does not cover subclass resources, so these calls
// hit the REST endpoints directly.

type subclassRef struct {
	Index string `json:"index"`
	Name  string `json:"name"`
}

type classDetailResponse struct {
	Subclasses []subclassRef `json:"subclasses"`
}

type subclassSpellEntry struct {
	Spell subclassRef `json:"spell"`
}

type subclassDetailResponse struct {
	Index  string               `json:"index"`
	Name   string               `json:"name"`
	Flavor string               `json:"subclass_flavor"`
	Spells []subclassSpellEntry `json:"spells"`
}

func (c *client) ListSubclasses(ctx context.Context, classID string) ([]*SubclassData, error) {
	if classID == "" {
		return nil, errors.InvalidArgument("class ID is required")
	}

	var detail classDetailResponse
	if err := c.getJSON(ctx, "classes/"+classID, &detail); err != nil {
		return nil, errors.Wrap(err, "failed to list subclasses for class "+classID)
	}

	subclasses := make([]*SubclassData, len(detail.Subclasses))
	for i, ref := range detail.Subclasses {
		subclasses[i] = &SubclassData{ID: ref.Index, Name: ref.Name}
	}
	return subclasses, nil
}

func (c *client) ListSubclassSpells(ctx context.Context, subclassID string) ([]*SpellRef, error) {
	if subclassID == "" {
		return nil, errors.InvalidArgument("subclass ID is required")
	}

	var detail subclassDetailResponse
	if err := c.getJSON(ctx, "subclasses/"+subclassID, &detail); err != nil {
		return nil, errors.Wrap(err, "failed to get subclass "+subclassID)
	}

	// Many subclasses grant no spells; an empty list is a valid answer.
	spells := make([]*SpellRef, 0, len(detail.Spells))
	for _, entry := range detail.Spells {
		if entry.Spell.Index == "" {
			continue
		}
		spells = append(spells, &SpellRef{ID: entry.Spell.Index, Name: entry.Spell.Name})
	}
	return spells, nil
}

// getJSON performs a GET against a path relative to the API base URL and
// decodes the JSON body into out.
func (c *client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := strings.TrimSuffix(c.baseURL, "/") + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "request to "+url+" failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFoundf("%s not found", path)
	case resp.StatusCode != http.StatusOK:
		return errors.Unavailablef("%s returned %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to decode "+path)
	}
	return nil
}
