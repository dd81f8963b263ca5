package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"certsale/internal/adapter/bolt"
	"certsale/internal/adapter/ledger"
	"certsale/internal/adapter/payment"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
	"certsale/internal/core/port/mocks"
)

var (
	owner = domain.MustIdentity("0x1111111111111111111111111111111111111111")
	buyer = domain.MustIdentity("0x2222222222222222222222222222222222222222")
	other = domain.MustIdentity("0x3333333333333333333333333333333333333333")
	start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc    *CampaignUseCase
	native *ledger.Ledger
	clock  *clock
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	repo, err := bolt.Open(filepath.Join(t.TempDir(), "certsale.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	book := ledger.NewBook(true)
	gateway, err := payment.FromBook(book)
	require.NoError(t, err)
	native, err := book.Ledger(domain.NativeAsset())
	require.NoError(t, err)

	clk := &clock{now: start}
	opts = append([]Option{WithClock(clk.Now), WithLogger(discardLogger())}, opts...)
	return &fixture{
		svc:    NewCampaignUseCase(repo, gateway, opts...),
		native: native,
		clock:  clk,
	}
}

func (f *fixture) fund(t *testing.T, account domain.Identity, amount uint64) {
	t.Helper()
	require.NoError(t, f.native.Mint(context.Background(), account, amount))
}

func (f *fixture) balance(t *testing.T, account domain.Identity) uint64 {
	t.Helper()
	bal, err := f.native.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return bal
}

// create deploys a flat-priced campaign of two tiers with capacities 2 and
// 3 at price 10, open for one day.
func (f *fixture) create(t *testing.T) *port.CampaignView {
	t.Helper()
	view, err := f.svc.CreateCampaign(context.Background(), port.CreateCampaignReq{
		Owner:          owner,
		ContentBase:    "ipfs://base/",
		Name:           "Solar Farm",
		Symbol:         "SUN",
		TierQuantities: []uint64{2, 3},
		Pricing:        domain.Pricing{Mode: domain.PricingFlat, BasePrice: 10},
		MaximumSupply:  5,
		Deadline:       start.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return view
}

func buyOne(tier int) []domain.TierRequest {
	return []domain.TierRequest{{Tier: tier, Quantity: 1}}
}

func TestCreateCampaign(t *testing.T) {
	f := newFixture(t)
	view := f.create(t)

	assert.False(t, view.ID.IsZero())
	assert.Equal(t, domain.StatusNew, view.Status)
	assert.Equal(t, domain.NativeAsset(), view.Asset)
	assert.Equal(t, uint64(0), view.Balance)
	assert.Empty(t, view.Distributions)

	list, err := f.svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, view.ID, list[0].ID)

	_, err = f.svc.CreateCampaign(context.Background(), port.CreateCampaignReq{
		Owner:          owner,
		Name:           "Unlisted Token",
		TierQuantities: []uint64{1},
		MaximumSupply:  1,
		Deadline:       start.Add(time.Hour),
		Asset:          domain.TokenAsset(other),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAsset)

	list, err = f.svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPurchaseAndWithdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 100)

	receipt, err := f.svc.Purchase(ctx, c.ID, buyer, []domain.TierRequest{{Tier: 0, Quantity: 2}}, domain.Payment{Attached: 20})
	require.NoError(t, err)
	assert.Equal(t, []domain.CertificateID{0, 1}, receipt.Certificates)
	assert.Equal(t, uint64(20), receipt.Cost)
	assert.Equal(t, uint64(80), f.balance(t, buyer))
	assert.Equal(t, uint64(20), f.balance(t, c.ID))

	view, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), view.Balance)
	assert.Equal(t, uint64(2), view.TotalMinted)
	assert.Equal(t, uint64(0), view.Tiers[0].Remaining)

	_, err = f.svc.Withdraw(ctx, c.ID, buyer)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	amount, err := f.svc.Withdraw(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), amount)
	assert.Equal(t, uint64(20), f.balance(t, owner))
	assert.Equal(t, uint64(0), f.balance(t, c.ID))

	_, err = f.svc.Withdraw(ctx, c.ID, owner)
	require.ErrorIs(t, err, domain.ErrNotEligibleForWithdrawal)
	_, err = f.svc.Purchase(ctx, c.ID, buyer, buyOne(1), domain.Payment{Attached: 10})
	require.ErrorIs(t, err, domain.ErrNotNew)
	assert.Equal(t, uint64(80), f.balance(t, buyer))
}

func TestPurchasePaymentMismatchChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 100)

	tests := []struct {
		name     string
		attached uint64
		want     error
	}{
		{"short", 9, domain.ErrInsufficientPayment},
		{"over", 11, domain.ErrOverPayment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(1), domain.Payment{Attached: tt.attached})
			require.ErrorIs(t, err, tt.want)

			view, err := f.svc.GetCampaign(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), view.TotalMinted)
			assert.Equal(t, uint64(3), view.Tiers[1].Remaining)
			assert.Equal(t, uint64(0), view.Balance)
		})
	}
	assert.Equal(t, uint64(100), f.balance(t, buyer))
}

func TestSettlementFailureRestoresCampaign(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)

	// Exact value attached but the account cannot cover it.
	_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.ErrorIs(t, err, domain.ErrPaymentTransferFailed)

	certs, err := f.svc.CertificatesOf(ctx, c.ID, buyer)
	require.NoError(t, err)
	assert.Empty(t, certs)

	f.fund(t, buyer, 10)
	_, err = f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, c.ID, owner))

	f.native.SetReceiver(buyer, func(context.Context, domain.Identity, uint64) error {
		return errors.New("receive reverted")
	})
	_, err = f.svc.Reclaim(ctx, c.ID, buyer)
	require.ErrorIs(t, err, domain.ErrPaymentTransferFailed)

	view, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), view.Balance)
	assert.Equal(t, uint64(1), view.LiveSupply)
	assert.Equal(t, uint64(0), view.Ledger.Refunded)

	f.native.SetReceiver(buyer, nil)
	refund, err := f.svc.Reclaim(ctx, c.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), refund.Amount)
	assert.Equal(t, uint64(10), f.balance(t, buyer))
}

func TestReentrantCallIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 10)

	_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.NoError(t, err)

	var reentered error
	f.native.SetReceiver(owner, func(ctx context.Context, _ domain.Identity, _ uint64) error {
		_, reentered = f.svc.Withdraw(ctx, c.ID, owner)
		return nil
	})

	amount, err := f.svc.Withdraw(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), amount)
	require.ErrorIs(t, reentered, port.ErrReentrantCall)
	assert.Equal(t, uint64(10), f.balance(t, owner))
}

func TestCancelAndReclaim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 30)

	_, err := f.svc.Purchase(ctx, c.ID, buyer, []domain.TierRequest{{Tier: 0, Quantity: 1}, {Tier: 1, Quantity: 2}}, domain.Payment{Attached: 30})
	require.NoError(t, err)
	_, err = f.svc.ManualTransfer(ctx, c.ID, owner, buyOne(1), buyer)
	require.NoError(t, err)

	_, err = f.svc.Reclaim(ctx, c.ID, buyer)
	require.ErrorIs(t, err, domain.ErrNotCancelled)

	require.NoError(t, f.svc.Cancel(ctx, c.ID, owner))
	require.ErrorIs(t, f.svc.Cancel(ctx, c.ID, owner), domain.ErrAlreadyCancelled)

	refund, err := f.svc.Reclaim(ctx, c.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), refund.Amount)
	assert.Equal(t, []domain.CertificateID{0, 1, 2}, refund.Certificates)
	assert.Equal(t, uint64(30), f.balance(t, buyer))

	// The granted certificate was never paid for and stays.
	certs, err := f.svc.CertificatesOf(ctx, c.ID, buyer)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, domain.CertificateID(3), certs[0].ID)

	again, err := f.svc.Reclaim(ctx, c.ID, buyer)
	require.NoError(t, err)
	assert.Zero(t, again.Amount)
}

func TestExpiryCancelsLazily(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 10)
	_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.NoError(t, err)

	require.NoError(t, f.svc.ExtendDeadline(ctx, c.ID, owner, start.Add(48*time.Hour)))
	f.clock.Advance(48 * time.Hour)

	view, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, view.Status)
	list, err := f.svc.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, list[0].Status)

	require.ErrorIs(t, f.svc.ExtendDeadline(ctx, c.ID, owner, start.Add(72*time.Hour)), domain.ErrCampaignCancelled)
	_, err = f.svc.Withdraw(ctx, c.ID, owner)
	require.ErrorIs(t, err, domain.ErrNotEligibleForWithdrawal)

	refund, err := f.svc.Reclaim(ctx, c.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), refund.Amount)
}

func TestDistributionClaims(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 20)
	f.fund(t, other, 10)

	_, err := f.svc.Purchase(ctx, c.ID, buyer, []domain.TierRequest{{Tier: 0, Quantity: 2}}, domain.Payment{Attached: 20})
	require.NoError(t, err)
	_, err = f.svc.Purchase(ctx, c.ID, other, buyOne(1), domain.Payment{Attached: 10})
	require.NoError(t, err)

	_, err = f.svc.CreateDistribution(ctx, c.ID, owner, 30, domain.Payment{Attached: 30})
	require.ErrorIs(t, err, domain.ErrNotWithdrawn)

	_, err = f.svc.Withdraw(ctx, c.ID, owner)
	require.NoError(t, err)
	d, err := f.svc.CreateDistribution(ctx, c.ID, owner, 30, domain.Payment{Attached: 30})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Index)
	assert.Equal(t, uint64(3), d.SupplyBasis)
	assert.Equal(t, uint64(0), f.balance(t, owner))

	due, err := f.svc.Entitlement(ctx, c.ID, 0, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), due)

	receipt, err := f.svc.Claim(ctx, c.ID, 0, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), receipt.Amount)
	assert.Equal(t, uint64(20), f.balance(t, buyer))

	again, err := f.svc.Claim(ctx, c.ID, 0, buyer)
	require.NoError(t, err)
	assert.Zero(t, again.Amount)

	_, err = f.svc.ClaimBatch(ctx, c.ID, []int{0, 1}, other)
	require.ErrorIs(t, err, domain.ErrDistributionNotFound)

	batch, err := f.svc.ClaimBatch(ctx, c.ID, []int{0}, other)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), batch.Amount)

	view, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), view.Balance)
	assert.Equal(t, uint64(30), view.Ledger.Distributed)
	require.Len(t, view.Distributions, 1)
	assert.Equal(t, uint64(0), view.Distributions[0].Remaining)
}

func TestTransferCertificate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 10)
	_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.TransferCertificate(ctx, c.ID, other, 0, owner), domain.ErrNotHolder)
	require.NoError(t, f.svc.TransferCertificate(ctx, c.ID, buyer, 0, other))

	cert, err := f.svc.Certificate(ctx, c.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, other, cert.Holder)
	assert.Equal(t, "ipfs://base/1.json", cert.TokenURI)

	_, err = f.svc.Certificate(ctx, c.ID, 7)
	require.ErrorIs(t, err, domain.ErrCertificateNotFound)
}

func TestUnknownCampaign(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetCampaign(context.Background(), other)
	require.ErrorIs(t, err, port.ErrCampaignNotFound)
	_, err = f.svc.Purchase(context.Background(), other, buyer, buyOne(0), domain.Payment{})
	require.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	events := mocks.NewMockEventPublisher(t)
	var types []domain.EventType
	events.EXPECT().
		Publish(mock.Anything, mock.AnythingOfType("domain.Event")).
		Run(func(_ context.Context, e domain.Event) {
			types = append(types, e.Type)
		}).
		Return(errors.New("broker down"))

	f := newFixture(t, WithEvents(events))
	c := f.create(t)
	require.NoError(t, f.svc.Cancel(context.Background(), c.ID, owner))

	assert.Equal(t, []domain.EventType{domain.EventCampaignCreated, domain.EventCampaignCancelled}, types)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	gateway := mocks.NewMockPaymentGateway(t)
	boom := errors.New("disk full")
	repo.EXPECT().Get(mock.Anything, buyer).Return(nil, boom)

	svc := NewCampaignUseCase(repo, gateway, WithLogger(discardLogger()))
	err := svc.Cancel(context.Background(), buyer, owner)
	require.ErrorIs(t, err, boom)
}

// TestConcurrentPurchases ensures concurrent buyers cannot oversell a tier
// or lose value.
func TestConcurrentPurchases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 1000)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	count := 10
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, err := f.svc.Purchase(ctx, c.ID, buyer, buyOne(1), domain.Payment{Attached: 10})
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, sold)
	assert.Equal(t, uint64(30), f.balance(t, c.ID))
	assert.Equal(t, uint64(970), f.balance(t, buyer))
	view, err := f.svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), view.Balance)
	assert.Equal(t, uint64(0), view.Tiers[1].Remaining)
}

func TestCollectFailureThroughAdapter(t *testing.T) {
	ctx := context.Background()
	repo, err := bolt.Open(filepath.Join(t.TempDir(), "certsale.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	adapter := mocks.NewMockPaymentAdapter(t)
	gateway := mocks.NewMockPaymentGateway(t)
	gateway.EXPECT().For(domain.NativeAsset()).Return(adapter, nil)
	adapter.EXPECT().
		Collect(mock.Anything, mock.AnythingOfType("domain.Identity"), domain.Payment{Payer: buyer, Attached: 10}, uint64(10)).
		Return(domain.ErrPaymentTransferFailed).
		Once()

	clk := &clock{now: start}
	f := &fixture{svc: NewCampaignUseCase(repo, gateway, WithClock(clk.Now), WithLogger(discardLogger())), clock: clk}
	c := f.create(t)

	_, err = f.svc.Purchase(ctx, c.ID, buyer, buyOne(0), domain.Payment{Attached: 10})
	require.ErrorIs(t, err, domain.ErrPaymentTransferFailed)

	stored, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stored.TotalMinted())
	assert.Equal(t, uint64(2), stored.Tiers[0].Remaining)
	assert.NoError(t, stored.CheckConservation())
	// Create, save and restore.
	assert.Equal(t, int64(3), stored.Version)
}

// TestTokenCampaignFlow runs a token-priced campaign through purchase,
// withdrawal, a distribution and a refund against a real token ledger.
func TestTokenCampaignFlow(t *testing.T) {
	ctx := context.Background()
	coin := domain.MustIdentity("0x4444444444444444444444444444444444444444")
	asset := domain.TokenAsset(coin)

	repo, err := bolt.Open(filepath.Join(t.TempDir(), "certsale.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	book := ledger.NewBook(false, coin)
	gateway, err := payment.FromBook(book)
	require.NoError(t, err)
	svc := NewCampaignUseCase(repo, gateway, WithClock(func() time.Time { return start }), WithLogger(discardLogger()))

	tok, err := book.Ledger(asset)
	require.NoError(t, err)
	require.NoError(t, tok.Mint(ctx, buyer, 20))
	require.NoError(t, tok.Mint(ctx, owner, 14))
	balance := func(account domain.Identity) uint64 {
		bal, err := book.Balance(ctx, asset, account)
		require.NoError(t, err)
		return bal
	}
	newCampaign := func() *port.CampaignView {
		view, err := svc.CreateCampaign(ctx, port.CreateCampaignReq{
			Owner:          owner,
			ContentBase:    "ipfs://",
			Name:           "Wind Park",
			Symbol:         "WND",
			TierQuantities: []uint64{1, 1, 1},
			Pricing:        domain.Pricing{Mode: domain.PricingFlat, BasePrice: 7},
			MaximumSupply:  3,
			Deadline:       start.Add(24 * time.Hour),
			Asset:          asset,
		})
		require.NoError(t, err)
		return view
	}

	sale := newCampaign()
	assert.Equal(t, asset, sale.Asset)

	_, err = svc.Purchase(ctx, sale.ID, buyer, buyOne(2), domain.Payment{})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)
	_, err = svc.Purchase(ctx, sale.ID, buyer, buyOne(2), domain.Payment{Attached: 7})
	require.ErrorIs(t, err, domain.ErrOverPayment)
	assert.Equal(t, uint64(20), balance(buyer))
	view, err := svc.GetCampaign(ctx, sale.ID)
	require.NoError(t, err)
	assert.Zero(t, view.TotalMinted)
	assert.Zero(t, view.Balance)

	require.NoError(t, book.Approve(ctx, asset, buyer, sale.ID, 7))
	receipt, err := svc.Purchase(ctx, sale.ID, buyer, buyOne(2), domain.Payment{})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), receipt.Cost)
	assert.Equal(t, uint64(7), balance(sale.ID))
	assert.Equal(t, uint64(13), balance(buyer))

	certs, err := svc.CertificatesOf(ctx, sale.ID, buyer)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "ipfs://3.json", certs[0].TokenURI)

	amount, err := svc.Withdraw(ctx, sale.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), amount)
	assert.Equal(t, uint64(21), balance(owner))

	_, err = svc.CreateDistribution(ctx, sale.ID, owner, 14, domain.Payment{})
	require.ErrorIs(t, err, domain.ErrInsufficientPayment)
	require.NoError(t, book.Approve(ctx, asset, owner, sale.ID, 14))
	d, err := svc.CreateDistribution(ctx, sale.ID, owner, 14, domain.Payment{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), d.SupplyBasis)
	assert.Equal(t, uint64(7), balance(owner))
	assert.Equal(t, uint64(14), balance(sale.ID))

	claim, err := svc.Claim(ctx, sale.ID, d.Index, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(14), claim.Amount)
	assert.Equal(t, uint64(27), balance(buyer))

	view, err = svc.GetCampaign(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, balance(sale.ID), view.Balance)
	assert.Equal(t, view.Ledger.Collected, view.Ledger.Released()+view.Ledger.Escrow)

	refundable := newCampaign()
	require.NoError(t, book.Approve(ctx, asset, buyer, refundable.ID, 7))
	_, err = svc.Purchase(ctx, refundable.ID, buyer, buyOne(0), domain.Payment{})
	require.NoError(t, err)
	assert.Equal(t, uint64(20), balance(buyer))
	require.NoError(t, svc.Cancel(ctx, refundable.ID, owner))

	refund, err := svc.Reclaim(ctx, refundable.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), refund.Amount)
	assert.Equal(t, uint64(27), balance(buyer))
	assert.Zero(t, balance(refundable.ID))
}

// TestReentryOutsideSettlementContext covers hooks that do not call back
// with the context they were given.
func TestReentryOutsideSettlementContext(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t)
	f.fund(t, buyer, 20)
	_, err := f.svc.Purchase(ctx, c.ID, buyer, []domain.TierRequest{{Tier: 0, Quantity: 2}}, domain.Payment{Attached: 20})
	require.NoError(t, err)

	t.Run("detached context is still recognised", func(t *testing.T) {
		var reentered error
		f.native.SetReceiver(buyer, func(ctx context.Context, _ domain.Identity, _ uint64) error {
			_, reentered = f.svc.Reclaim(context.WithoutCancel(ctx), c.ID, buyer)
			return nil
		})
		t.Cleanup(func() { f.native.SetReceiver(buyer, nil) })

		require.NoError(t, f.svc.Cancel(ctx, c.ID, owner))
		refund, err := f.svc.Reclaim(ctx, c.ID, buyer)
		require.NoError(t, err)
		assert.Equal(t, uint64(20), refund.Amount)
		require.ErrorIs(t, reentered, port.ErrReentrantCall)
	})

	t.Run("fresh context gives up when it expires", func(t *testing.T) {
		sale := f.create(t)
		_, err := f.svc.Purchase(ctx, sale.ID, buyer, buyOne(1), domain.Payment{Attached: 10})
		require.NoError(t, err)

		var reentered error
		f.native.SetReceiver(owner, func(context.Context, domain.Identity, uint64) error {
			waitCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, reentered = f.svc.Withdraw(waitCtx, sale.ID, owner)
			return nil
		})
		t.Cleanup(func() { f.native.SetReceiver(owner, nil) })

		done := make(chan error, 1)
		go func() {
			_, err := f.svc.Withdraw(ctx, sale.ID, owner)
			done <- err
		}()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("withdraw did not return")
		}
		require.ErrorIs(t, reentered, context.DeadlineExceeded)

		view, err := f.svc.GetCampaign(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusWithdrawn, view.Status)
		assert.Equal(t, uint64(10), f.balance(t, owner))
	})
}
