package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/shopspring/decimal"
)

// BatchPool hands out one financial batch per distinct generation date
// within a run. Batches are created Closed: they are historical backfill,
// never open for edit.
type BatchPool struct {
	store   Store
	batches map[string]*models.FinancialBatch
}

func NewBatchPool(store Store) *BatchPool {
	return &BatchPool{store: store, batches: make(map[string]*models.FinancialBatch)}
}

const batchDateKeyLayout = "2006-01-02"

func (p *BatchPool) GetOrCreate(ctx context.Context, date time.Time) (*models.FinancialBatch, error) {
	key := date.Format(batchDateKeyLayout)
	if b, ok := p.batches[key]; ok {
		return b, nil
	}
	b := &models.FinancialBatch{
		Guid:          uuid.NewString(),
		Name:          "Sample Giving " + key,
		BatchDate:     date,
		Status:        models.BatchStatusClosed,
		ControlAmount: decimal.Zero,
	}
	if err := p.store.Add(ctx, b); err != nil {
		return nil, err
	}
	if err := p.store.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("create batch for %s: %w", key, err)
	}
	p.batches[key] = b
	return b, nil
}

// AddTransaction queues the transaction and bumps the batch's running
// control amount in the same step, so the two can never diverge.
func (p *BatchPool) AddTransaction(ctx context.Context, batch *models.FinancialBatch, txn *models.FinancialTransaction) error {
	if err := p.store.Add(ctx, txn); err != nil {
		return err
	}
	batch.ControlAmount = batch.ControlAmount.Add(txn.TotalAmount())
	return nil
}

// FlushTotals persists the accumulated control amounts once a generation
// pass is done adding transactions.
func (p *BatchPool) FlushTotals(ctx context.Context) error {
	if err := p.store.SaveChanges(ctx); err != nil {
		return err
	}
	for _, b := range p.batches {
		if err := p.store.Update(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

type accountAmount struct {
	accountId int
	amount    decimal.Decimal
}

// givingJob is one person's fabricated-contribution configuration with all
// document references resolved to storage ids.
type givingJob struct {
	personGuid          string
	startDate           time.Time
	endDate             time.Time
	frequency           models.GivingFrequency
	percentGive         int
	growRatePercent     int
	growFrequencyWeeks  int
	amounts             []accountAmount
	checkImageUrls      []string
	currencyTypeValueId int
}

// generateGiving steps through the job's date range at the configured
// cadence and emits one transaction per retained date. Amount growth is
// applied by snapshot-then-replace so every line item of a transaction uses
// a single point-in-time rate. Growth rounding is round-half-up to whole
// currency units (decimal's half-away-from-zero on positive amounts).
func (m *Manager) generateGiving(ctx context.Context, job givingJob) error {
	amounts := make([]accountAmount, len(job.amounts))
	copy(amounts, job.amounts)

	growthsApplied := 0
	imageIdx := 0

	for date := job.startDate; !date.After(job.endDate); date = nextGivingDate(date, job.frequency) {
		if job.growFrequencyWeeks > 0 && job.growRatePercent != 0 {
			weeksElapsed := int(date.Sub(job.startDate).Hours() / 24 / 7)
			for due := weeksElapsed / job.growFrequencyWeeks; growthsApplied < due; growthsApplied++ {
				amounts = growAmounts(amounts, job.growRatePercent)
			}
		}

		if !keepDate(m.rng.Intn(100), job.percentGive, date) {
			if job.frequency == models.GivingFrequencyOnce {
				break
			}
			continue
		}

		batch, err := m.batches.GetOrCreate(ctx, date)
		if err != nil {
			return err
		}

		aliasId, err := m.ids.Alias(job.personGuid)
		if err != nil {
			return err
		}

		txn := &models.FinancialTransaction{
			Guid:                    uuid.NewString(),
			BatchId:                 batch.ID,
			AuthorizedPersonAliasId: aliasId,
			TransactionDateTime:     date,
			CurrencyTypeValueId:     job.currencyTypeValueId,
		}
		for _, aa := range amounts {
			txn.Details = append(txn.Details, models.FinancialTransactionDetail{
				AccountId: aa.accountId,
				Amount:    aa.amount,
			})
		}

		if len(job.checkImageUrls) > 0 {
			imageId, err := m.fetchCheckImage(ctx, job.checkImageUrls[imageIdx])
			if err != nil {
				return err
			}
			if imageId != 0 {
				txn.CheckImageId = &imageId
			}
			imageIdx = (imageIdx + 1) % len(job.checkImageUrls)
		}

		if err := m.batches.AddTransaction(ctx, batch, txn); err != nil {
			return err
		}

		if job.frequency == models.GivingFrequencyOnce {
			break
		}
	}
	return nil
}

func nextGivingDate(date time.Time, freq models.GivingFrequency) time.Time {
	switch freq {
	case models.GivingFrequencyMonthly:
		return date.AddDate(0, 1, 0)
	case models.GivingFrequencyOnce:
		// One-time giving produces exactly one date; the caller breaks out
		// before this advance matters.
		return date.AddDate(0, 0, 1)
	default:
		return date.AddDate(0, 0, 7)
	}
}

// growAmounts returns a scaled copy of the account amounts, leaving the
// input untouched.
func growAmounts(amounts []accountAmount, ratePercent int) []accountAmount {
	factor := decimal.NewFromInt(int64(100 + ratePercent)).Div(decimal.NewFromInt(100))
	grown := make([]accountAmount, len(amounts))
	for i, aa := range amounts {
		grown[i] = accountAmount{
			accountId: aa.accountId,
			amount:    aa.amount.Mul(factor).Round(0),
		}
	}
	return grown
}

// fetchCheckImage pulls the image and stores it as a binary file. A fetch
// failure is logged and the transaction proceeds without an image; a store
// failure is a real persistence problem and aborts the run.
func (m *Manager) fetchCheckImage(ctx context.Context, url string) (int, error) {
	if m.fetcher == nil || url == "" {
		return 0, nil
	}
	content, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		m.log.WithField("url", url).Debug("check image fetch failed; transaction proceeds without image")
		return 0, nil
	}
	file := &models.BinaryFile{
		Guid:     uuid.NewString(),
		FileName: "check-image",
		MimeType: "image/jpeg",
		Content:  content,
	}
	if err := m.store.Add(ctx, file); err != nil {
		return 0, err
	}
	if err := m.store.SaveChanges(ctx); err != nil {
		return 0, err
	}
	return file.ID, nil
}
