package collector

import (
	"context"
	"strings"

	"github.com/google/go-github/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// Releases requested per fetch. Kept small: anything older has either been
// seen already or is too stale to rank.
const githubReleasePageSize = 10

type GithubReleaseCollector struct {
	client *github.Client
}

// NewGithubReleaseCollector builds a collector for the releases REST
// endpoint. A non-empty token raises the API rate limit; anonymous access
// works for public repos.
func NewGithubReleaseCollector(token string) *GithubReleaseCollector {
	if token == "" {
		return &GithubReleaseCollector{client: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GithubReleaseCollector{client: github.NewClient(oauth2.NewClient(context.Background(), ts))}
}

// parseOwnerRepo accepts "owner/repo" as well as a full github.com url.
func parseOwnerRepo(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, "/")
	if idx := strings.Index(trimmed, "github.com/"); idx >= 0 {
		trimmed = trimmed[idx+len("github.com/"):]
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid github source url: %s", url)
	}
	return parts[0], parts[1], nil
}

// Collect lists the repo's recent releases. Releases without a tag_name are
// skipped, the tag is the release's identity.
func (c *GithubReleaseCollector) Collect(ctx context.Context, source *model.Source) ([]model.RawItem, error) {
	owner, repo, err := parseOwnerRepo(source.Url)
	if err != nil {
		return nil, &SourceFetchError{SourceName: source.Name, Err: err}
	}

	releases, _, err := c.client.Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: githubReleasePageSize})
	if err != nil {
		return nil, &SourceFetchError{SourceName: source.Name, Err: errors.Wrap(err, "fail to list releases")}
	}

	items := []model.RawItem{}
	for _, release := range releases {
		tag := release.GetTagName()
		if tag == "" {
			Logger.Log.Debugf("skip release without tag_name in %s", source.Name)
			continue
		}

		title := release.GetName()
		if title == "" {
			title = repo + " " + tag
		}

		identity := title
		if release.PublishedAt != nil {
			identity = release.PublishedAt.UTC().String()
		}

		item := model.RawItem{
			SourceID:   source.Id,
			ExternalId: tag,
			Title:      title,
			Url:        release.GetHTMLURL(),
			Payload: MarshalPayload(GithubPayload{
				TagName:    tag,
				Name:       release.GetName(),
				Body:       release.GetBody(),
				Prerelease: release.GetPrerelease(),
				Draft:      release.GetDraft(),
			}),
			UniqHash: Fingerprint(source.Url, tag, identity),
		}
		if release.PublishedAt != nil {
			t := release.PublishedAt.Time
			item.PublishedAt = &t
		}
		items = append(items, item)
	}

	return items, nil
}
