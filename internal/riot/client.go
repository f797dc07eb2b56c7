package riot

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/transport"
)

// AccountByRiotID fetches the account record for a Riot ID.
// A 404 from the API surfaces as a typed not-found error; use
// errors.IsNotFound to test for it.
func (c *Client) AccountByRiotID(ctx context.Context, id RiotID) (*Account, error) {
	key := fmt.Sprintf("account:%s:%s", c.region, id)
	if v, ok := c.cache.Get(key); ok {
		if account, ok := v.(*Account); ok {
			return account, nil
		}
	}

	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalBase, url.PathEscape(id.GameName), url.PathEscape(id.TagLine))

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := transport.DecodeResponse("riot", resp, &account); err != nil {
		return nil, err
	}

	c.cache.Set(key, &account, cache.CategoryAccount)
	return &account, nil
}

// MatchIDOptions filters the match-ID listing.
type MatchIDOptions struct {
	Start int
	Count int
	Queue int // 0 means no queue filter (420 ranked solo, 440 flex, 450 ARAM)
}

// MatchIDsByPUUID fetches the player's recent match IDs, newest first.
func (c *Client) MatchIDsByPUUID(ctx context.Context, puuid string, opts MatchIDOptions) ([]string, error) {
	if opts.Count <= 0 {
		opts.Count = 20
	}

	key := fmt.Sprintf("match_ids:%s:%s:%d:%d:%d", c.region, puuid, opts.Start, opts.Count, opts.Queue)
	if v, ok := c.cache.Get(key); ok {
		if ids, ok := v.([]string); ok {
			return ids, nil
		}
	}

	query := url.Values{}
	query.Set("start", strconv.Itoa(opts.Start))
	query.Set("count", strconv.Itoa(opts.Count))
	if opts.Queue != 0 {
		query.Set("queue", strconv.Itoa(opts.Queue))
	}

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s",
		c.regionalBase, url.PathEscape(puuid), query.Encode())

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := transport.DecodeResponse("riot", resp, &ids); err != nil {
		return nil, err
	}

	c.cache.Set(key, ids, cache.CategoryMatchIDs)
	return ids, nil
}

// MatchByID fetches the full match document. Completed matches never change,
// so these entries are safe to cache for the full match_details lifetime.
func (c *Client) MatchByID(ctx context.Context, matchID string) (*Match, error) {
	key := "match_details:" + matchID
	if v, ok := c.cache.Get(key); ok {
		if match, ok := v.(*Match); ok {
			return match, nil
		}
	}

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalBase, url.PathEscape(matchID))

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var match Match
	if err := transport.DecodeResponse("riot", resp, &match); err != nil {
		return nil, err
	}

	c.cache.Set(key, &match, cache.CategoryMatchDetails)
	return &match, nil
}

// SummonerByPUUID fetches the summoner record on the client's platform.
func (c *Client) SummonerByPUUID(ctx context.Context, puuid string) (*Summoner, error) {
	key := fmt.Sprintf("summoner:%s:%s", c.platform, puuid)
	if v, ok := c.cache.Get(key); ok {
		if summoner, ok := v.(*Summoner); ok {
			return summoner, nil
		}
	}

	endpoint := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s",
		c.platformBase, url.PathEscape(puuid))

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var summoner Summoner
	if err := transport.DecodeResponse("riot", resp, &summoner); err != nil {
		return nil, err
	}

	c.cache.Set(key, &summoner, cache.CategorySummoner)
	return &summoner, nil
}

// LeagueEntriesByPUUID fetches ranked league entries, one per queue type.
func (c *Client) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	key := fmt.Sprintf("league:%s:%s", c.platform, puuid)
	if v, ok := c.cache.Get(key); ok {
		if entries, ok := v.([]LeagueEntry); ok {
			return entries, nil
		}
	}

	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s",
		c.platformBase, url.PathEscape(puuid))

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var entries []LeagueEntry
	if err := transport.DecodeResponse("riot", resp, &entries); err != nil {
		return nil, err
	}

	c.cache.Set(key, entries, cache.CategoryLeague)
	return entries, nil
}
