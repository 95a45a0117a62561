package interactor

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banking/transaction-service/internal/domain/models"
	"github.com/banking/transaction-service/internal/domain/repositories"
	apperrors "github.com/banking/transaction-service/internal/errors"
	"github.com/banking/transaction-service/internal/infrastructure/cache"
	"github.com/banking/transaction-service/internal/infrastructure/memory"
	"github.com/banking/transaction-service/internal/usecases/dtos"
	"github.com/banking/transaction-service/pkg/log"
)

func TestMain(m *testing.M) {
	log.Init("transaction-service-test", log.WithLogLevel(int(zerolog.Disabled)))
	os.Exit(m.Run())
}

func newTestInteractor() (*TransactionInteractor, repositories.TransactionRepository, *cache.ResponseCache) {
	repo := memory.NewTransactionRepositoryImpl()
	responseCache := cache.NewResponseCache(1000, 30*time.Minute)
	return NewTransactionInteractor(repo, responseCache, 10), repo, responseCache
}

func createDTO(account string, amount float64, description string) *dtos.TransactionCreateDTO {
	amt := decimal.NewFromFloat(amount)
	return &dtos.TransactionCreateDTO{
		Amount:        &amt,
		Description:   description,
		Type:          string(models.TypePayment),
		AccountNumber: account,
	}
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, timestamp and pending status", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		response, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, response.ID)
		assert.False(t, response.Timestamp.IsZero())
		assert.Equal(t, models.StatusPending, response.Status)
		assert.True(t, response.Amount.Equal(decimal.NewFromFloat(150.75)))
		assert.Equal(t, "Rent", response.Description)
		assert.Equal(t, models.TypePayment, response.Type)
		assert.Equal(t, "ACC-1", response.AccountNumber)
	})

	t.Run("created record is immediately readable", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		got, err := i.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("immediate repeat on the same account is rejected", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		_, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		_, err = i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		var dup *apperrors.DuplicateTransactionError
		require.True(t, apperrors.As(err, &dup))
		assert.Contains(t, err.Error(), "within 10 seconds")
	})

	t.Run("same fields on different accounts both succeed", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		_, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		_, err = i.CreateTransaction(ctx, createDTO("ACC-2", 150.75, "Rent"))
		assert.NoError(t, err)
	})

	t.Run("a matching record older than the window does not block", func(t *testing.T) {
		i, repo, _ := newTestInteractor()

		repo.Save(models.Transaction{
			ID:            uuid.New(),
			Amount:        decimal.NewFromFloat(150.75),
			Description:   "Rent",
			Type:          models.TypePayment,
			AccountNumber: "ACC-1",
			Timestamp:     time.Now().UTC().Add(-11 * time.Second),
			Status:        models.StatusPending,
		})

		_, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		assert.NoError(t, err)
	})

	t.Run("exactly one of two concurrent identical creates wins", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		n := 10
		results := make(chan error, n)
		var wg sync.WaitGroup
		wg.Add(n)

		for j := 0; j < n; j++ {
			go func() {
				defer wg.Done()
				_, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
				results <- err
			}()
		}

		wg.Wait()
		close(results)

		var successCount, duplicateCount int
		for err := range results {
			if err == nil {
				successCount++
				continue
			}
			var dup *apperrors.DuplicateTransactionError
			require.True(t, apperrors.As(err, &dup))
			duplicateCount++
		}

		assert.Equal(t, 1, successCount)
		assert.Equal(t, n-1, duplicateCount)
	})
}

func TestGetTransactionByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		id := uuid.New()
		_, err := i.GetTransactionByID(ctx, id)

		var notFound *apperrors.TransactionNotFoundError
		require.True(t, apperrors.As(err, &notFound))
		assert.Contains(t, err.Error(), "Transaction not found with id: "+id.String())
	})

	t.Run("read misses fill the cache", func(t *testing.T) {
		i, repo, responseCache := newTestInteractor()

		transaction := models.Transaction{
			ID:            uuid.New(),
			Amount:        decimal.NewFromFloat(10),
			Description:   "seeded",
			Type:          models.TypeDeposit,
			AccountNumber: "ACC-1",
			Timestamp:     time.Now().UTC(),
			Status:        models.StatusPending,
		}
		repo.Save(transaction)

		_, ok := responseCache.GetTransaction(transaction.ID)
		require.False(t, ok)

		_, err := i.GetTransactionByID(ctx, transaction.ID)
		require.NoError(t, err)

		_, ok = responseCache.GetTransaction(transaction.ID)
		assert.True(t, ok)
	})

	t.Run("cached snapshot is served without hitting the store", func(t *testing.T) {
		i, repo, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 10, "first"))
		require.NoError(t, err)

		// mutate the store behind the service's back
		stored, ok := repo.FindByID(created.ID)
		require.True(t, ok)
		stored.Description = "changed underneath"
		repo.Save(stored)

		got, err := i.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Description)
	})
}

func TestGetAllTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("returns every record", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		for j := 0; j < 3; j++ {
			_, err := i.CreateTransaction(ctx, createDTO("ACC-1", float64(j+1), "payment"))
			require.NoError(t, err)
		}

		all, err := i.GetAllTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("listing reflects writes after the cached copy", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		_, err := i.CreateTransaction(ctx, createDTO("ACC-1", 1, "payment"))
		require.NoError(t, err)

		all, err := i.GetAllTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		_, err = i.CreateTransaction(ctx, createDTO("ACC-2", 2, "payment"))
		require.NoError(t, err)

		all, err = i.GetAllTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("listing reflects deletes", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 1, "payment"))
		require.NoError(t, err)

		_, err = i.GetAllTransactions(ctx)
		require.NoError(t, err)

		require.NoError(t, i.DeleteTransaction(ctx, created.ID))

		all, err := i.GetAllTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGetTransactionsPaginated(t *testing.T) {
	ctx := context.Background()

	seed := func(repo repositories.TransactionRepository, n int) {
		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		for j := 0; j < n; j++ {
			repo.Save(models.Transaction{
				ID:            uuid.New(),
				Amount:        decimal.NewFromInt(int64(j + 1)),
				Description:   "seeded",
				Type:          models.TypePayment,
				AccountNumber: "ACC-1",
				Timestamp:     base.Add(time.Duration(j) * time.Minute),
				Status:        models.StatusPending,
			})
		}
	}

	t.Run("first page", func(t *testing.T) {
		i, repo, _ := newTestInteractor()
		seed(repo, 25)

		page, err := i.GetTransactionsPaginated(ctx, 0, 10)
		require.NoError(t, err)

		assert.Len(t, page.Content, 10)
		assert.Equal(t, 0, page.PageNumber)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, int64(25), page.TotalElements)
		assert.Equal(t, 3, page.TotalPages)
		assert.True(t, page.First)
		assert.False(t, page.Last)
	})

	t.Run("last page", func(t *testing.T) {
		i, repo, _ := newTestInteractor()
		seed(repo, 25)

		page, err := i.GetTransactionsPaginated(ctx, 2, 10)
		require.NoError(t, err)

		assert.Len(t, page.Content, 5)
		assert.False(t, page.First)
		assert.True(t, page.Last)
	})

	t.Run("empty store", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		page, err := i.GetTransactionsPaginated(ctx, 0, 10)
		require.NoError(t, err)

		assert.Empty(t, page.Content)
		assert.Equal(t, int64(0), page.TotalElements)
		assert.Equal(t, 0, page.TotalPages)
		assert.True(t, page.First)
		assert.True(t, page.Last)
	})
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("partial patch touches only provided fields", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		amt := decimal.NewFromFloat(99.99)
		updated, err := i.UpdateTransaction(ctx, created.ID, &dtos.TransactionUpdateDTO{Amount: &amt})
		require.NoError(t, err)

		assert.True(t, updated.Amount.Equal(amt))
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Type, updated.Type)
		assert.Equal(t, created.AccountNumber, updated.AccountNumber)
		assert.Equal(t, created.Status, updated.Status)
	})

	t.Run("id and timestamp never change", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		updated, err := i.UpdateTransaction(ctx, created.ID, &dtos.TransactionUpdateDTO{
			Description: strPtr("Rent, May"),
			Status:      strPtr(string(models.StatusCompleted)),
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, created.Timestamp.Equal(updated.Timestamp))
		assert.Equal(t, models.StatusCompleted, updated.Status)
	})

	t.Run("empty patch leaves the record unchanged", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		updated, err := i.UpdateTransaction(ctx, created.ID, &dtos.TransactionUpdateDTO{})
		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("unknown id", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		amt := decimal.NewFromInt(1)
		_, err := i.UpdateTransaction(ctx, uuid.New(), &dtos.TransactionUpdateDTO{Amount: &amt})

		var notFound *apperrors.TransactionNotFoundError
		assert.True(t, apperrors.As(err, &notFound))
	})

	t.Run("patch that collides with another record is rejected without writing", func(t *testing.T) {
		i, repo, _ := newTestInteractor()

		first, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)
		second, err := i.CreateTransaction(ctx, createDTO("ACC-1", 42.00, "Groceries"))
		require.NoError(t, err)

		amt := first.Amount
		_, err = i.UpdateTransaction(ctx, second.ID, &dtos.TransactionUpdateDTO{
			Amount:      &amt,
			Description: strPtr(first.Description),
		})

		var dup *apperrors.DuplicateTransactionError
		require.True(t, apperrors.As(err, &dup))

		stored, ok := repo.FindByID(second.ID)
		require.True(t, ok)
		assert.Equal(t, "Groceries", stored.Description)
		assert.True(t, stored.Amount.Equal(decimal.NewFromFloat(42.00)))
	})

	t.Run("subsequent reads observe the update", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		// warm the cache with the pre-update snapshot
		_, err = i.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)

		_, err = i.UpdateTransaction(ctx, created.ID, &dtos.TransactionUpdateDTO{Description: strPtr("Rent, adjusted")})
		require.NoError(t, err)

		got, err := i.GetTransactionByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rent, adjusted", got.Description)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted records disappear everywhere", func(t *testing.T) {
		i, repo, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		require.NoError(t, i.DeleteTransaction(ctx, created.ID))

		_, err = i.GetTransactionByID(ctx, created.ID)
		var notFound *apperrors.TransactionNotFoundError
		assert.True(t, apperrors.As(err, &notFound))
		assert.False(t, repo.ExistsByID(created.ID))
	})

	t.Run("second delete fails not found", func(t *testing.T) {
		i, _, _ := newTestInteractor()

		created, err := i.CreateTransaction(ctx, createDTO("ACC-1", 150.75, "Rent"))
		require.NoError(t, err)

		require.NoError(t, i.DeleteTransaction(ctx, created.ID))

		err = i.DeleteTransaction(ctx, created.ID)
		var notFound *apperrors.TransactionNotFoundError
		assert.True(t, apperrors.As(err, &notFound))
	})
}
