package inventory

import (
	"testing"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func widget() domain.Product {
	return domain.Product{ProductID: "p-1", Name: "Widget", MaintainingQty: 10, CriticalQty: 5, IsActive: true}
}

func txn(id string, day int, in, out int64, createdOffset time.Duration) domain.Transaction {
	t := domain.Transaction{
		TransactionID: id,
		ProductID:     "p-1",
		Date:          domain.NewDate(2024, 3, day),
		QtyIn:         in,
		QtyOut:        out,
	}
	t.CreatedAt = base.Add(createdOffset)
	return t
}

func TestDeriveStatus(t *testing.T) {
	p := widget()
	tests := []struct {
		name  string
		stock int64
		want  domain.StockStatus
	}{
		{"above maintaining", 11, domain.StatusOK},
		{"at maintaining", 10, domain.StatusWarning},
		{"between thresholds", 6, domain.StatusWarning},
		{"at critical", 5, domain.StatusCritical},
		{"negative stock", -3, domain.StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.stock, p))
		})
	}
}

func TestDeriveStatus_MisorderedThresholdsPrefersCritical(t *testing.T) {
	p := domain.Product{ProductID: "p-1", MaintainingQty: 5, CriticalQty: 25}
	assert.Equal(t, domain.StatusCritical, DeriveStatus(8, p))
	assert.Equal(t, domain.StatusOK, DeriveStatus(30, p))
}

func TestStatusMonotonicAsStockDecreases(t *testing.T) {
	p := widget()
	prev := DeriveStatus(100, p)
	for stock := int64(99); stock >= -10; stock-- {
		cur := DeriveStatus(stock, p)
		assert.GreaterOrEqual(t, cur.Severity(), prev.Severity(), "stock %d", stock)
		assert.LessOrEqual(t, cur.Severity()-prev.Severity(), 1, "stock %d skipped a status", stock)
		prev = cur
	}
}

func TestComputeSnapshot_ScenarioA(t *testing.T) {
	p := widget()
	ledger := []domain.Transaction{txn("t1", 1, 20, 0, 0)}

	snap := ComputeSnapshot(p, ledger)
	assert.Equal(t, int64(20), snap.CurrentStock)
	assert.Equal(t, domain.StatusOK, snap.Status)

	ledger = append(ledger, txn("t2", 2, 0, 12, time.Hour))
	snap = ComputeSnapshot(p, ledger)
	assert.Equal(t, int64(8), snap.CurrentStock)
	assert.Equal(t, domain.StatusWarning, snap.Status)

	ledger = append(ledger, txn("t3", 3, 0, 5, 2*time.Hour))
	snap = ComputeSnapshot(p, ledger)
	assert.Equal(t, int64(3), snap.CurrentStock)
	assert.Equal(t, int64(20), snap.TotalIn)
	assert.Equal(t, int64(17), snap.TotalOut)
	assert.Equal(t, domain.StatusCritical, snap.Status)
}

func TestComputeSnapshot_IsIdempotent(t *testing.T) {
	p := widget()
	ledger := []domain.Transaction{txn("t1", 1, 20, 0, 0), txn("t2", 2, 0, 12, 0)}
	assert.Equal(t, ComputeSnapshot(p, ledger), ComputeSnapshot(p, ledger))
}

func TestComputeSnapshot_IgnoresOtherProducts(t *testing.T) {
	p := widget()
	other := txn("x", 1, 100, 0, 0)
	other.ProductID = "p-2"
	snap := ComputeSnapshot(p, []domain.Transaction{txn("t1", 1, 4, 0, 0), other})
	assert.Equal(t, int64(4), snap.CurrentStock)
}

func TestComputeRunningEntries_OrdersByDateThenCreatedAt(t *testing.T) {
	p := widget()
	// Submitted out of order: a later-dated entry was created first.
	ledger := []domain.Transaction{
		txn("t3", 3, 0, 5, 0),
		txn("t2b", 2, 0, 2, 3*time.Hour),
		txn("t1", 1, 20, 0, 5*time.Hour),
		txn("t2a", 2, 0, 10, time.Hour),
	}

	entries := ComputeRunningEntries(p, ledger)
	require.Len(t, entries, 4)
	ids := []string{entries[0].TransactionID, entries[1].TransactionID, entries[2].TransactionID, entries[3].TransactionID}
	assert.Equal(t, []string{"t1", "t2a", "t2b", "t3"}, ids)
	assert.Equal(t, []int64{20, 10, 8, 3}, []int64{entries[0].RunningTotal, entries[1].RunningTotal, entries[2].RunningTotal, entries[3].RunningTotal})
	assert.Equal(t, domain.StatusCritical, entries[3].Status)
	assert.Equal(t, "Widget", entries[0].ProductName)

	// Input slice untouched.
	assert.Equal(t, "t3", ledger[0].TransactionID)
}

func TestComputeRunningEntries_ReplayDeterminism(t *testing.T) {
	p := widget()
	ledger := []domain.Transaction{
		txn("a", 1, 20, 0, 0),
		txn("b", 1, 0, 3, 0), // same timestamp as "a", id breaks the tie
		txn("c", 2, 7, 1, 0),
	}
	reversed := []domain.Transaction{ledger[2], ledger[1], ledger[0]}

	first := ComputeRunningEntries(p, ledger)
	second := ComputeRunningEntries(p, reversed)
	assert.Equal(t, first, second)
	assert.Equal(t, ComputeSnapshot(p, ledger).CurrentStock, first[len(first)-1].RunningTotal)
}

func TestComputeRunningEntries_ScenarioCAfterDelete(t *testing.T) {
	p := widget()
	ledger := []domain.Transaction{txn("t1", 1, 20, 0, 0), txn("t3", 3, 0, 5, 0)}
	entries := ComputeRunningEntries(p, ledger)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(15), entries[1].RunningTotal)
	assert.Equal(t, domain.StatusOK, entries[1].Status)
}

func TestThresholdChangeRelabelsHistory(t *testing.T) {
	p := widget()
	ledger := []domain.Transaction{txn("t1", 1, 20, 0, 0), txn("t2", 2, 0, 12, 0)}
	assert.Equal(t, domain.StatusWarning, ComputeRunningEntries(p, ledger)[1].Status)

	p.CriticalQty = 25
	p.MaintainingQty = 30
	entries := ComputeRunningEntries(p, ledger)
	assert.Equal(t, domain.StatusCritical, entries[0].Status)
	assert.Equal(t, domain.StatusCritical, entries[1].Status)
}
