package source

import (
	"context"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/httputil"
)

// Options selects and configures a source for Open.
type Options struct {
	Kind          string
	Dir           string // file
	BaseURL       string // http
	Token         string // http, sent as a bearer token when set
	MongoURI      string // mongo
	MongoDatabase string // mongo
}

// Open constructs the source named by opts.Kind. The returned close
// function releases connections and is never nil.
func Open(ctx context.Context, opts Options) (Source, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch opts.Kind {
	case "", KindDemo:
		return NewDemo(), noop, nil
	case KindFile:
		src, err := NewFileSource(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	case KindHTTP:
		var copts []httputil.ClientOption
		if opts.Token != "" {
			copts = append(copts, httputil.WithHeader("Authorization", "Bearer "+opts.Token))
		}
		src, err := NewHTTPSource(opts.BaseURL, httputil.NewClient(copts...))
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	case KindMongo:
		src, err := NewMongoSource(ctx, opts.MongoURI, opts.MongoDatabase)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	default:
		return nil, noop, errors.New(errors.ErrCodeInvalidConfig, "unknown source kind %q", opts.Kind)
	}
}
