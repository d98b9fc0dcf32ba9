package fetch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/monetr-client/internal/store"
)

// Report is the outcome of FetchAfterLogin. Every resource a request was made for appears in
// Attempted; the ones that failed also appear in Errors. Transactions already loaded for the
// selected account are not requested again and do not appear.
type Report struct {
	Errors    map[store.Resource]error
	Attempted []store.Resource
	mu        sync.Mutex
}

func (r *Report) record(resource store.Resource, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Attempted = append(r.Attempted, resource)
	if err != nil {
		if r.Errors == nil {
			r.Errors = make(map[store.Resource]error)
		}
		r.Errors[resource] = err
	}
}

// Degraded reports whether any fetch failed.
func (r *Report) Degraded() bool {
	return len(r.Errors) > 0
}

// Err joins every failure into one error, nil when nothing failed.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	resources := make([]store.Resource, 0, len(r.Errors))
	for resource := range r.Errors {
		resources = append(resources, resource)
	}
	slices.Sort(resources)

	errs := make([]error, 0, len(resources))
	for _, resource := range resources {
		errs = append(errs, fmt.Errorf("%s: %w", resource, r.Errors[resource]))
	}
	return errors.Join(errs...)
}

// FetchAfterLogin loads everything the main views need. Links load alongside bank accounts;
// once bank accounts have loaded, the selected account's transactions, spending, funding
// schedules and balance load concurrently. It returns after every fetch has settled. A failed
// fetch never stops the others, except that the per-account fetches are skipped when bank
// accounts fail or there is no bank account.
func (f *Fetcher) FetchAfterLogin(ctx context.Context) *Report {
	report := &Report{}
	var g errgroup.Group

	g.Go(func() error {
		report.record(store.ResourceLinks, f.FetchLinks(ctx))
		return nil
	})

	g.Go(func() error {
		err := f.FetchBankAccounts(ctx)
		report.record(store.ResourceBankAccounts, err)
		if err != nil {
			f.logger.Warn("skipping per-account fetches, bank accounts failed to load", "error", err)
			return nil
		}
		if f.selectors.SelectedBankAccountID(f.store.Snapshot()) == 0 {
			f.logger.Debug("no bank accounts, skipping per-account fetches")
			return nil
		}

		var accountGroup errgroup.Group
		perAccount := []struct {
			fetch    func(context.Context) (bool, error)
			resource store.Resource
		}{
			{fetch: f.fetchInitialTransactions, resource: store.ResourceTransactions},
			{fetch: always(f.FetchSpending), resource: store.ResourceSpending},
			{fetch: always(f.FetchFundingSchedules), resource: store.ResourceFundingSchedules},
			{fetch: always(f.FetchBalances), resource: store.ResourceBalances},
		}
		for _, item := range perAccount {
			accountGroup.Go(func() error {
				if fetched, err := item.fetch(ctx); fetched {
					report.record(item.resource, err)
				}
				return nil
			})
		}
		return accountGroup.Wait()
	})

	_ = g.Wait()

	if report.Degraded() {
		f.logger.Warn("post-login fetch finished degraded", "failed", len(report.Errors))
	} else {
		f.logger.Debug("post-login fetch finished", "fetched", len(report.Attempted))
	}
	return report
}

func always(fetch func(context.Context) error) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		return true, fetch(ctx)
	}
}
