package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	accounting "github.com/bumlambs-max/Accounting-2.0"
	"github.com/bumlambs-max/Accounting-2.0/mongostore"
	"github.com/bumlambs-max/Accounting-2.0/s3store"
	"github.com/bumlambs-max/Accounting-2.0/sqlitestore"
	"github.com/bumlambs-max/Accounting-2.0/webstore"
)

// openStore selects a store backend from the scheme of the configured store
// URL:
//
//	https://bins.example.com/books       web bin service, key appended to the path
//	mongodb+srv://cluster.example/farm   mongo collection, database from the path
//	sqlite://farmbook.db                 embedded sqlite file
//	s3://bucket/prefix?region=eu-west-1  s3 objects under the prefix
//
// The returned cleanup releases whatever connection the backend holds and is
// safe to call on every path.
func openStore(ctx context.Context) (store accounting.Store, cleanup func(), err error) {
	cfg := config()
	cleanup = func() {}

	u, err := url.Parse(cfg.StoreURL)
	if err != nil {
		return nil, nil, fmt.Errorf("store URL %q: %w", cfg.StoreURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		c, err := webstore.New(webstore.Config{
			BaseURL:  cfg.StoreURL,
			APIKey:   cfg.APIKey,
			Envelope: cfg.Envelope,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, cleanup, nil

	case "mongodb", "mongodb+srv":
		db := strings.TrimPrefix(u.Path, "/")
		s, err := mongostore.Open(ctx, cfg.StoreURL, db)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close(context.Background()) }, nil

	case "sqlite":
		path := u.Opaque
		if path == "" {
			path = u.Host + u.Path
		}
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case "s3":
		q := u.Query()
		prefix := strings.TrimPrefix(u.Path, "/")
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		s, err := s3store.New(ctx, s3store.Config{
			Bucket:    u.Host,
			Prefix:    prefix,
			Region:    q.Get("region"),
			Endpoint:  q.Get("endpoint"),
			PathStyle: q.Get("pathstyle") == "true",
		})
		if err != nil {
			return nil, nil, err
		}
		return s, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("store URL %q: unknown scheme %q", cfg.StoreURL, u.Scheme)
	}
}
