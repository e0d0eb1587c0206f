package source

import (
	"context"
	"errors"

	"github.com/JonMunkholm/formnav/internal/config"
)

// FromConfig picks the record source: the backend URL first, then the
// database, then a local file. The returned close function releases any
// connections and is never nil.
func FromConfig(ctx context.Context, cfg *config.Config) (Fetcher, func(), error) {
	noop := func() {}

	switch {
	case cfg.Source.URL != "":
		var opts []HTTPOption
		switch {
		case cfg.Source.IdentityToken != "":
			opts = append(opts, WithTokenSource(StaticToken(cfg.Source.IdentityToken)))
		case cfg.Source.UseMetadata:
			opts = append(opts, WithTokenSource(NewMetadataTokenSource(cfg.Source.TokenAudience(), nil)))
		}
		return NewHTTPSource(cfg.Source.Endpoint(), cfg.Source.Timeout, opts...), noop, nil

	case cfg.Database.URL != "":
		pool, err := OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresSource(pool, cfg.Database.Table), pool.Close, nil

	case cfg.Source.File != "":
		return NewFileSource(cfg.Source.File), noop, nil
	}

	return nil, noop, errors.New("no record source configured")
}
