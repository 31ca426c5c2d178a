package main

import (
	"net/url"
	"strconv"
	"strings"

	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/errors"

	"github.com/spf13/viper"
)

// paramsFromViper maps flag values onto the query keys every surface shares
func paramsFromViper(v *viper.Viper) (analysis.Params, error) {
	q := url.Values{}
	for _, key := range []string{"year-min", "year-max", "top-n", "change-n", "max-countries", "change-from", "change-to"} {
		if n := v.GetInt(key); n != 0 {
			q.Set(strings.ReplaceAll(key, "-", "_"), strconv.Itoa(n))
		}
	}
	for _, key := range []string{"countries", "factors"} {
		if s := v.GetString(key); s != "" {
			q.Set(key, s)
		}
	}
	return analysis.ParamsFromQuery(q)
}

// parseAnalyses resolves a comma separated list of analysis IDs; empty
// selects every analysis
func parseAnalyses(s string) ([]happiness.AnalysisID, error) {
	var ids []happiness.AnalysisID
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		id, ok := happiness.ParseAnalysisID(part)
		if !ok {
			return nil, errors.NotFound("analysis " + strings.TrimSpace(part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
