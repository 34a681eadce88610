package posting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/peter86cu/contable-multiempresa/internal/document"
	"github.com/peter86cu/contable-multiempresa/internal/ledger"
	"github.com/peter86cu/contable-multiempresa/internal/posting"
	"github.com/peter86cu/contable-multiempresa/internal/treasury"
)

func newInvoice(companyID uuid.UUID, total, paid int64) *document.Document {
	status := document.StatusPending
	if paid > 0 {
		status = document.StatusPartial
	}

	return &document.Document{
		ID:               uuid.New(),
		CompanyID:        companyID,
		Kind:             document.KindInvoice,
		Number:           "F-2025-001",
		CounterpartyID:   uuid.New(),
		CounterpartyName: "Comercial Andina SL",
		Total:            total,
		Paid:             paid,
		Balance:          total - paid,
		Status:           status,
		IssueDate:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_RegisterPayment_FullPaymentOnInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	actorID := uuid.New()
	doc := newInvoice(companyID, 118000, 0)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, doc.ID).Return(doc, nil)
	tx.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *posting.Payment) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})
	tx.EXPECT().UpdateDocumentPayment(gomock.Any(), doc.ID, document.PaymentState{
		Paid:    118000,
		Balance: 0,
		Status:  document.StatusPaid,
	}).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	repo.EXPECT().LatestEntryNumber(gomock.Any(), companyID).Return("ASI-007", nil)

	var createdEntry *ledger.Entry

	repo.EXPECT().
		CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
			e.ID = uuid.New()
			createdEntry = e
			return nil
		})

	recorder.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params treasury.RecordParams) *treasury.Movement {
			assert.Equal(t, companyID, params.CompanyID)
			assert.Equal(t, treasury.MovementIncome, params.Type)
			assert.Equal(t, int64(118000), params.Amount)
			assert.Equal(t, "ASI-008", params.Reference)
			return &treasury.Movement{ID: uuid.New(), Reconciliation: treasury.ReconciliationPending}
		})

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: doc.ID,
		ActorID:    actorID,
		Amount:     118000,
		Method:     ledger.MethodBankTransfer,
		Date:       date,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(118000), result.Document.Paid)
	assert.Equal(t, int64(0), result.Document.Balance)
	assert.Equal(t, document.StatusPaid, result.Document.Status)

	require.NotNil(t, result.Entry)
	assert.Same(t, createdEntry, result.Entry)
	assert.Equal(t, "ASI-008", result.Entry.Number)
	assert.True(t, result.Entry.Balanced())
	require.Len(t, result.Entry.Lines, 2)
	assert.Equal(t, ledger.AccountBank, result.Entry.Lines[0].AccountCode)
	assert.Equal(t, int64(118000), result.Entry.Lines[0].Debit)
	assert.Equal(t, ledger.AccountReceivable, result.Entry.Lines[1].AccountCode)
	assert.Equal(t, int64(118000), result.Entry.Lines[1].Credit)

	require.NotNil(t, result.Movement)
}

func TestService_RegisterPayment_BillUsesPayableAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	doc := newInvoice(companyID, 50000, 0)
	doc.Kind = document.KindBill
	doc.Number = "B-77"

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, doc.ID).Return(doc, nil)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().UpdateDocumentPayment(gomock.Any(), doc.ID, document.PaymentState{
		Paid:    50000,
		Balance: 0,
		Status:  document.StatusPaid,
	}).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	repo.EXPECT().LatestEntryNumber(gomock.Any(), companyID).Return("", nil)
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)

	recorder.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params treasury.RecordParams) *treasury.Movement {
			assert.Equal(t, treasury.MovementExpense, params.Type)
			return nil
		})

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		Amount:     50000,
		Method:     ledger.MethodCash,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Entry)
	assert.Equal(t, "ASI-001", result.Entry.Number)
	require.Len(t, result.Entry.Lines, 2)
	assert.Equal(t, ledger.AccountPayable, result.Entry.Lines[0].AccountCode)
	assert.Equal(t, int64(50000), result.Entry.Lines[0].Debit)
	assert.Equal(t, ledger.AccountCash, result.Entry.Lines[1].AccountCode)
	assert.Equal(t, int64(50000), result.Entry.Lines[1].Credit)

	assert.Nil(t, result.Movement)
}

func TestService_RegisterPayment_DocumentNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	docID := uuid.New()

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, docID).Return(nil, document.ErrNotFound)
	tx.EXPECT().Rollback().Return(nil)

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: docID,
		ActorID:    uuid.New(),
		Amount:     1000,
		Method:     ledger.MethodCash,
	})
	assert.ErrorIs(t, err, document.ErrNotFound)
	assert.Nil(t, result)
}

func TestService_RegisterPayment_UpdateFailureAbortsWholePosting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	doc := newInvoice(companyID, 295000, 100000)

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, doc.ID).Return(doc, nil)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().
		UpdateDocumentPayment(gomock.Any(), doc.ID, gomock.Any()).
		Return(errors.New("write conflict"))
	tx.EXPECT().Rollback().Return(nil)

	// No Commit, no entry, no cash movement: the transaction aborts as a unit.
	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		Amount:     95000,
		Method:     ledger.MethodBankTransfer,
	})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_RegisterPayment_EntryFailureKeepsPaymentApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	doc := newInvoice(companyID, 100000, 0)

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, doc.ID).Return(doc, nil)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().UpdateDocumentPayment(gomock.Any(), doc.ID, gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	repo.EXPECT().LatestEntryNumber(gomock.Any(), companyID).Return("ASI-001", nil)
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(errors.New("store unavailable"))

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		Amount:     100000,
		Method:     ledger.MethodCard,
	})
	require.NoError(t, err)

	assert.NotNil(t, result.Payment)
	assert.Equal(t, document.StatusPaid, result.Document.Status)
	assert.Nil(t, result.Entry)
	assert.Nil(t, result.Movement)
}

func TestService_RegisterPayment_NumberLookupFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	tx := posting.NewMockTx(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	companyID := uuid.New()
	doc := newInvoice(companyID, 100000, 0)

	repo.EXPECT().BeginPosting(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetDocumentForUpdate(gomock.Any(), companyID, doc.ID).Return(doc, nil)
	tx.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().UpdateDocumentPayment(gomock.Any(), doc.ID, gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	repo.EXPECT().
		LatestEntryNumber(gomock.Any(), companyID).
		Return("", errors.New("index unavailable"))
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  companyID,
		DocumentID: doc.ID,
		ActorID:    uuid.New(),
		Amount:     100000,
		Method:     ledger.MethodCash,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Entry)
	assert.Regexp(t, `^ASI-\d+$`, result.Entry.Number)
	assert.True(t, result.Entry.Balanced())
}

func TestService_RegisterPayment_RequiresActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
		CompanyID:  uuid.New(),
		DocumentID: uuid.New(),
		Amount:     1000,
		Method:     ledger.MethodCash,
	})
	assert.ErrorIs(t, err, posting.ErrUnauthenticated)
	assert.Nil(t, result)
}

func TestService_RegisterPayment_RejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := posting.NewMockRepository(ctrl)
	recorder := posting.NewMockCashRecorder(ctrl)
	svc := posting.NewService(repo, recorder)

	for _, amount := range []int64{0, -500} {
		result, err := svc.RegisterPayment(context.Background(), posting.PaymentParams{
			CompanyID:  uuid.New(),
			DocumentID: uuid.New(),
			ActorID:    uuid.New(),
			Amount:     amount,
			Method:     ledger.MethodCash,
		})
		assert.ErrorIs(t, err, posting.ErrInvalidAmount)
		assert.Nil(t, result)
	}
}
