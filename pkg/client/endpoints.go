package client

import (
	"context"

	"github.com/Sternrassler/igdb-api-client/pkg/params"
)

// IGDB endpoint names.
const (
	EndpointAchievements          = "achievements"
	EndpointCharacters            = "characters"
	EndpointCollections           = "collections"
	EndpointCompanies             = "companies"
	EndpointCredits               = "credits"
	EndpointExternalReviews       = "external_reviews"
	EndpointExternalReviewSources = "external_review_sources"
	EndpointFeeds                 = "feeds"
	EndpointFranchises            = "franchises"
	EndpointGames                 = "games"
	EndpointGameEngines           = "game_engines"
	EndpointGameModes             = "game_modes"
	EndpointGenres                = "genres"
	EndpointKeywords              = "keywords"
	EndpointPages                 = "pages"
	EndpointPeople                = "people"
	EndpointPlatforms             = "platforms"
	EndpointPlayTimes             = "play_times"
	EndpointPlayerPerspectives    = "player_perspectives"
	EndpointPulses                = "pulses"
	EndpointPulseGroups           = "pulse_groups"
	EndpointPulseSources          = "pulse_sources"
	EndpointReleaseDates          = "release_dates"
	EndpointReviews               = "reviews"
	EndpointThemes                = "themes"
	EndpointTitles                = "titles"
	EndpointMe                    = "me"
	EndpointGameVersions          = "game_versions"
)

// Endpoints returns every known endpoint name.
func Endpoints() []string {
	return []string{
		EndpointAchievements,
		EndpointCharacters,
		EndpointCollections,
		EndpointCompanies,
		EndpointCredits,
		EndpointExternalReviews,
		EndpointExternalReviewSources,
		EndpointFeeds,
		EndpointFranchises,
		EndpointGames,
		EndpointGameEngines,
		EndpointGameModes,
		EndpointGenres,
		EndpointKeywords,
		EndpointPages,
		EndpointPeople,
		EndpointPlatforms,
		EndpointPlayTimes,
		EndpointPlayerPerspectives,
		EndpointPulses,
		EndpointPulseGroups,
		EndpointPulseSources,
		EndpointReleaseDates,
		EndpointReviews,
		EndpointThemes,
		EndpointTitles,
		EndpointMe,
		EndpointGameVersions,
	}
}

// IsEndpoint reports whether name is a known endpoint.
func IsEndpoint(name string) bool {
	for _, e := range Endpoints() {
		if e == name {
			return true
		}
	}
	return false
}

func (c *Client) Achievements(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointAchievements, b)
}

func (c *Client) Characters(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointCharacters, b)
}

func (c *Client) Collections(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointCollections, b)
}

func (c *Client) Companies(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointCompanies, b)
}

func (c *Client) Credits(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointCredits, b)
}

func (c *Client) ExternalReviews(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointExternalReviews, b)
}

func (c *Client) ExternalReviewSources(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointExternalReviewSources, b)
}

func (c *Client) Feeds(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointFeeds, b)
}

func (c *Client) Franchises(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointFranchises, b)
}

func (c *Client) Games(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointGames, b)
}

func (c *Client) GameEngines(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointGameEngines, b)
}

func (c *Client) GameModes(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointGameModes, b)
}

func (c *Client) Genres(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointGenres, b)
}

func (c *Client) Keywords(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointKeywords, b)
}

func (c *Client) Pages(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPages, b)
}

func (c *Client) People(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPeople, b)
}

func (c *Client) Platforms(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPlatforms, b)
}

func (c *Client) PlayTimes(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPlayTimes, b)
}

func (c *Client) PlayerPerspectives(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPlayerPerspectives, b)
}

func (c *Client) Pulses(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPulses, b)
}

func (c *Client) PulseGroups(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPulseGroups, b)
}

func (c *Client) PulseSources(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointPulseSources, b)
}

func (c *Client) ReleaseDates(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointReleaseDates, b)
}

func (c *Client) Reviews(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointReviews, b)
}

func (c *Client) Themes(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointThemes, b)
}

func (c *Client) Titles(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointTitles, b)
}

// Me returns the account behind the API key.
func (c *Client) Me(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointMe, b)
}

func (c *Client) GameVersions(ctx context.Context, b *params.Builder) (Result, error) {
	return c.FetchData(ctx, EndpointGameVersions, b)
}
