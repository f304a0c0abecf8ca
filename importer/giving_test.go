package importer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func TestGrowAmountsCompounds(t *testing.T) {
	amounts := []accountAmount{{accountId: 1, amount: decimal.NewFromInt(100)}}

	once := growAmounts(amounts, 10)
	if got := once[0].amount.String(); got != "110" {
		t.Fatalf("one growth of 10%%: got %s, want 110", got)
	}
	twice := growAmounts(once, 10)
	if got := twice[0].amount.String(); got != "121" {
		t.Fatalf("two growths of 10%%: got %s, want 121", got)
	}
	// The input slice is never mutated.
	if got := amounts[0].amount.String(); got != "100" {
		t.Fatalf("growAmounts mutated its input: %s", got)
	}
}

func TestGrowAmountsRoundsHalfUp(t *testing.T) {
	amounts := []accountAmount{{accountId: 1, amount: decimal.NewFromInt(25)}}
	// 25 * 1.10 = 27.5 rounds up to 28.
	grown := growAmounts(amounts, 10)
	if got := grown[0].amount.String(); got != "28" {
		t.Fatalf("got %s, want 28", got)
	}
}

func TestGenerateGivingBatchControlTotals(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(t, store, Options{
		RandomizerSeed: 13,
		Now:            time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	})

	m.ids.RegisterAlias("giver-1", 101)
	m.ids.RegisterAlias("giver-2", 102)

	jobs := []givingJob{
		{
			personGuid:  "giver-1",
			startDate:   time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			endDate:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			frequency:   models.GivingFrequencyWeekly,
			percentGive: 100,
			amounts: []accountAmount{
				{accountId: 1, amount: decimal.NewFromInt(50)},
				{accountId: 2, amount: decimal.NewFromInt(20)},
			},
			currencyTypeValueId: 9,
		},
		{
			personGuid:  "giver-2",
			startDate:   time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			endDate:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			frequency:   models.GivingFrequencyMonthly,
			percentGive: 100,
			amounts: []accountAmount{
				{accountId: 1, amount: decimal.NewFromInt(200)},
			},
			currencyTypeValueId: 9,
		},
	}
	for _, job := range jobs {
		if err := m.generateGiving(ctx, job); err != nil {
			t.Fatalf("generateGiving: %v", err)
		}
	}
	if err := m.batches.FlushTotals(ctx); err != nil {
		t.Fatalf("FlushTotals: %v", err)
	}

	if len(store.txns) == 0 {
		t.Fatalf("expected transactions at 100%% inclusion")
	}

	// Every batch's control amount must equal the sum of its transactions'
	// line items, and transactions on the same date share one batch.
	byDate := make(map[string]int)
	for _, batch := range store.batches {
		key := batch.BatchDate.Format("2006-01-02")
		byDate[key]++
		if byDate[key] > 1 {
			t.Fatalf("more than one batch for date %s", key)
		}

		total := decimal.Zero
		for _, txn := range store.txns {
			if txn.BatchId == batch.ID {
				total = total.Add(txn.TotalAmount())
			}
		}
		if !batch.ControlAmount.Equal(total) {
			t.Fatalf("batch %s control amount %s, transactions total %s",
				batch.Name, batch.ControlAmount, total)
		}
		if batch.Status != models.BatchStatusClosed {
			t.Fatalf("batch %s status %s, want %s", batch.Name, batch.Status, models.BatchStatusClosed)
		}
	}
}

func TestGenerateGivingGrowthCatchup(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(t, store, Options{RandomizerSeed: 5})

	m.ids.RegisterAlias("giver", 7)

	// Weekly giving, growing 10% every 4 weeks over 9 weeks: weeks 0-3 at
	// 100, weeks 4-7 at 110, week 8 at 121.
	job := givingJob{
		personGuid:         "giver",
		startDate:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		endDate:            time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC),
		frequency:          models.GivingFrequencyWeekly,
		percentGive:        100,
		growRatePercent:    10,
		growFrequencyWeeks: 4,
		amounts:            []accountAmount{{accountId: 1, amount: decimal.NewFromInt(100)}},
	}
	if err := m.generateGiving(ctx, job); err != nil {
		t.Fatalf("generateGiving: %v", err)
	}

	want := []string{"100", "100", "100", "100", "110", "110", "110", "110", "121"}
	if len(store.txns) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(store.txns), len(want))
	}
	for i, txn := range store.txns {
		if got := txn.TotalAmount().String(); got != want[i] {
			t.Fatalf("week %d amount %s, want %s", i, got, want[i])
		}
	}
}

func TestGenerateGivingOneTimeEmitsSingleTransaction(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(t, store, Options{RandomizerSeed: 3})

	m.ids.RegisterAlias("giver", 7)

	job := givingJob{
		personGuid:  "giver",
		startDate:   time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
		endDate:     time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		frequency:   models.GivingFrequencyOnce,
		percentGive: 100,
		amounts:     []accountAmount{{accountId: 1, amount: decimal.NewFromInt(500)}},
	}
	if err := m.generateGiving(ctx, job); err != nil {
		t.Fatalf("generateGiving: %v", err)
	}
	if len(store.txns) != 1 {
		t.Fatalf("one-time giving produced %d transactions, want 1", len(store.txns))
	}
	if !store.txns[0].TransactionDateTime.Equal(job.startDate) {
		t.Fatalf("transaction date %s, want %s", store.txns[0].TransactionDateTime, job.startDate)
	}
}

type binaryFileRejectingStore struct {
	*memStore
	failErr error
}

func (s *binaryFileRejectingStore) Add(ctx context.Context, entity any) error {
	if _, ok := entity.(*models.BinaryFile); ok {
		return s.failErr
	}
	return s.memStore.Add(ctx, entity)
}

type staticImageFetcher struct{}

func (staticImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return []byte("jpeg-bytes"), nil
}

func TestGenerateGivingAbortsWhenCheckImageStoreFails(t *testing.T) {
	ctx := context.Background()
	failErr := errors.New("insert binary file: connection reset")
	store := &binaryFileRejectingStore{memStore: newMemStore(), failErr: failErr}
	log := logrus.New()
	log.SetOutput(io.Discard)
	m, err := NewManager(store, staticImageFetcher{}, log, Options{RandomizerSeed: 7})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	m.ids.RegisterAlias("giver", 7)

	job := givingJob{
		personGuid:     "giver",
		startDate:      time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
		endDate:        time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
		frequency:      models.GivingFrequencyOnce,
		percentGive:    100,
		amounts:        []accountAmount{{accountId: 1, amount: decimal.NewFromInt(500)}},
		checkImageUrls: []string{"https://assets.example.test/check.jpg"},
	}
	if err := m.generateGiving(ctx, job); !errors.Is(err, failErr) {
		t.Fatalf("generateGiving error %v, want %v", err, failErr)
	}
	if len(store.txns) != 0 {
		t.Fatalf("%d transactions persisted after a failed store write, want 0", len(store.txns))
	}
}
