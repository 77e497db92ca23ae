package collector

import (
	"context"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// Recent versions considered per fetch.
const registryVersionCap = 5

const defaultRegistryBaseUrl = "https://registry.npmjs.org"

type RegistryCollector struct {
	client  *resty.Client
	baseUrl string
}

func NewRegistryCollector() *RegistryCollector {
	return &RegistryCollector{
		client:  resty.New().SetTimeout(15 * time.Second),
		baseUrl: defaultRegistryBaseUrl,
	}
}

// NewRegistryCollectorWithBaseUrl points the collector at a non-default
// registry endpoint. Used by tests with a local server.
func NewRegistryCollectorWithBaseUrl(baseUrl string) *RegistryCollector {
	c := NewRegistryCollector()
	c.baseUrl = baseUrl
	return c
}

type registryPackage struct {
	Name     string                     `json:"name"`
	Versions map[string]registryVersion `json:"versions"`
	// Time maps version -> publish timestamp, plus "created"/"modified".
	Time map[string]string `json:"time"`
}

type registryVersion struct {
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Collect fetches the package metadata and normalizes the most recently
// published versions. source.Url holds the package name.
func (c *RegistryCollector) Collect(ctx context.Context, source *model.Source) ([]model.RawItem, error) {
	pkg := &registryPackage{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(pkg).
		Get(c.baseUrl + "/" + source.Url)
	if err != nil {
		return nil, &SourceFetchError{SourceName: source.Name, Err: errors.Wrap(err, "fail to fetch registry metadata")}
	}
	if resp.IsError() {
		return nil, &SourceFetchError{SourceName: source.Name, Err: errors.Errorf("registry returned %d", resp.StatusCode())}
	}

	// Order versions by publish time descending so "recent" does not depend
	// on map iteration order.
	versions := make([]string, 0, len(pkg.Versions))
	for version := range pkg.Versions {
		versions = append(versions, version)
	}
	sort.Slice(versions, func(i, j int) bool {
		return pkg.Time[versions[i]] > pkg.Time[versions[j]]
	})
	if len(versions) > registryVersionCap {
		versions = versions[:registryVersionCap]
	}

	items := []model.RawItem{}
	for _, version := range versions {
		versionData := pkg.Versions[version]
		publishTime := pkg.Time[version]

		item := model.RawItem{
			SourceID:   source.Id,
			ExternalId: version,
			Title:      source.Url + " v" + version,
			Url:        "https://www.npmjs.com/package/" + source.Url + "/v/" + version,
			Payload: MarshalPayload(RegistryPayload{
				Version:     version,
				Description: versionData.Description,
				Keywords:    versionData.Keywords,
				Time:        publishTime,
			}),
			UniqHash: Fingerprint(source.Url, version, publishTime),
		}
		if publishTime != "" {
			if t, err := time.Parse(time.RFC3339, publishTime); err == nil {
				item.PublishedAt = &t
			}
		}
		items = append(items, item)
	}

	return items, nil
}
