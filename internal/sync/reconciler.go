// Package sync reconciles the local catalog against the upstream feed. Runs
// are idempotent: every write is an upsert keyed by external_id, so repeating
// a run with identical upstream data changes nothing.
package sync

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	catalogmodels "resourcehub/internal/catalog/models"
	"resourcehub/internal/platform/metrics"
	dErrors "resourcehub/pkg/domain-errors"
)

//go:generate mockgen -source=reconciler.go -destination=mocks/mocks.go -package=mocks

// Fetcher pulls the upstream feeds.
type Fetcher interface {
	FetchTags(ctx context.Context) ([]TagRecord, error)
	FetchResources(ctx context.Context) ([]ResourceRecord, error)
}

// CatalogStore is the catalog write contract the reconciler needs.
type CatalogStore interface {
	UpsertTag(ctx context.Context, t *catalogmodels.Tag) (bool, error)
	UpsertResource(ctx context.Context, r *catalogmodels.Resource) (bool, error)
	SetResourceTags(ctx context.Context, resourceExternalID int64, tagExternalIDs []int64) error
}

// Reconciler pulls both feeds and upserts them into the catalog.
type Reconciler struct {
	fetcher Fetcher
	catalog CatalogStore
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewReconciler constructs a reconciler.
func NewReconciler(fetcher Fetcher, catalog CatalogStore, m *metrics.Metrics, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		fetcher: fetcher,
		catalog: catalog,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer("resourcehub/sync"),
	}
}

// Run fetches both feeds concurrently and applies tags before resources, so
// applied-tag references resolve against fresh tag rows. The two phases are
// independent: a tag feed outage must not leave resources un-synced, and vice
// versa. Any failure surfaces as one error to the trigger; upserts already
// applied stay applied.
func (r *Reconciler) Run(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "sync.Run")
	defer span.End()

	var (
		tags      []TagRecord
		resources []ResourceRecord
		tagsErr   error
		resErr    error
	)

	g, fetchCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tags, tagsErr = r.fetcher.FetchTags(fetchCtx)
		return nil
	})
	g.Go(func() error {
		resources, resErr = r.fetcher.FetchResources(fetchCtx)
		return nil
	})
	_ = g.Wait() // goroutines stash errors instead of returning them

	var applyErrs []error

	if tagsErr != nil {
		r.logger.ErrorContext(ctx, "tag feed fetch failed, skipping tag phase", "error", tagsErr)
		applyErrs = append(applyErrs, tagsErr)
	} else if err := r.applyTags(ctx, tags); err != nil {
		applyErrs = append(applyErrs, err)
	}

	if resErr != nil {
		r.logger.ErrorContext(ctx, "resource feed fetch failed, skipping resource phase", "error", resErr)
		applyErrs = append(applyErrs, resErr)
	} else if err := r.applyResources(ctx, resources); err != nil {
		applyErrs = append(applyErrs, err)
	}

	if len(applyErrs) > 0 {
		r.metrics.SyncRuns.WithLabelValues("failure").Inc()
		return dErrors.Wrap(errors.Join(applyErrs...), dErrors.CodeUpstream, "sync run failed")
	}

	r.metrics.SyncRuns.WithLabelValues("success").Inc()
	r.logger.InfoContext(ctx, "sync run completed",
		"tags", len(tags),
		"resources", len(resources),
	)
	return nil
}

// Apply upserts an inline payload, sharing the reconciler's write path with
// the upload endpoint. Tags land before resources.
func (r *Reconciler) Apply(ctx context.Context, tags []TagRecord, resources []ResourceRecord) error {
	ctx, span := r.tracer.Start(ctx, "sync.Apply")
	defer span.End()

	if err := r.applyTags(ctx, tags); err != nil {
		return err
	}
	return r.applyResources(ctx, resources)
}

func (r *Reconciler) applyTags(ctx context.Context, records []TagRecord) error {
	ctx, span := r.tracer.Start(ctx, "sync.applyTags",
		trace.WithAttributes(attribute.Int("records", len(records))))
	defer span.End()

	for _, rec := range records {
		tag := catalogmodels.Tag{ExternalID: rec.ID, Label: rec.Tag}
		if _, err := r.catalog.UpsertTag(ctx, &tag); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert tag")
		}
		r.metrics.SyncTagsUpserted.Inc()
	}
	return nil
}

func (r *Reconciler) applyResources(ctx context.Context, records []ResourceRecord) error {
	ctx, span := r.tracer.Start(ctx, "sync.applyResources",
		trace.WithAttributes(attribute.Int("records", len(records))))
	defer span.End()

	for _, rec := range records {
		resource := catalogmodels.Resource{
			ExternalID: rec.ID,
			Author:     rec.Author,
			Name:       rec.Name,
			URL:        rec.URL,
			CreatedAt:  rec.CreatedAt,
		}
		if _, err := r.catalog.UpsertResource(ctx, &resource); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert resource")
		}
		// Replacement, not union: a tag removed upstream disappears locally.
		if err := r.catalog.SetResourceTags(ctx, rec.ID, rec.AppliedTags); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set resource tags")
		}
		r.metrics.SyncResourcesUpserted.Inc()
	}
	return nil
}
