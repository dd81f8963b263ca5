package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// CampaignUseCase runs campaign operations. Each mutating call is
// serialised per campaign and follows the same sequence: load, apply the
// domain operation, save, then settle the value movement. When settlement
// fails the saved state is restored, so the caller observes either the
// whole operation or nothing.
type CampaignUseCase struct {
	repo     port.CampaignRepository
	payments port.PaymentGateway
	events   port.EventPublisher
	metrics  port.Metrics
	logger   *slog.Logger

	now   func() time.Time
	newID func() (domain.Identity, error)
	locks *keyedMutex
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// Option customises a CampaignUseCase.
type Option func(*CampaignUseCase)

func WithEvents(p port.EventPublisher) Option {
	return func(u *CampaignUseCase) { u.events = p }
}

func WithMetrics(m port.Metrics) Option {
	return func(u *CampaignUseCase) { u.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(u *CampaignUseCase) { u.logger = l }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(u *CampaignUseCase) { u.now = now }
}

// WithAddressGenerator replaces NewAddress.
func WithAddressGenerator(gen func() (domain.Identity, error)) Option {
	return func(u *CampaignUseCase) { u.newID = gen }
}

// NewCampaignUseCase creates a usecase over the repository and payment
// gateway. Events and metrics are discarded unless configured.
func NewCampaignUseCase(repo port.CampaignRepository, payments port.PaymentGateway, opts ...Option) *CampaignUseCase {
	u := &CampaignUseCase{
		repo:     repo,
		payments: payments,
		events:   nopPublisher{},
		metrics:  nopMetrics{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    NewAddress,
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// settlingKey marks a context derived for a pending value movement. A
// call carrying it is rejected with port.ErrReentrantCall. Code run during
// settlement that calls back on an unrelated context waits for the
// campaign lock like any other caller, until that context is done.
type settlingKey struct{}

func settling(ctx context.Context) bool {
	_, ok := ctx.Value(settlingKey{}).(domain.Identity)
	return ok
}

// CreateCampaign is the factory: it deploys a campaign and announces it.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, req port.CreateCampaignReq) (_ *port.CampaignView, err error) {
	defer u.observe("create", time.Now(), &err)

	if settling(ctx) {
		return nil, port.ErrReentrantCall
	}
	input := domain.CreateCampaignInput{
		Owner:          req.Owner,
		ContentBase:    req.ContentBase,
		Name:           req.Name,
		Symbol:         req.Symbol,
		TierRefs:       req.TierRefs,
		TierQuantities: req.TierQuantities,
		Pricing:        req.Pricing,
		MaximumSupply:  req.MaximumSupply,
		Deadline:       req.Deadline,
		Asset:          req.Asset,
	}
	c, err := domain.CreateCampaign(input, u.now, u.newID)
	if err != nil {
		return nil, err
	}
	if _, err := u.payments.For(c.Asset); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	u.logger.Info("campaign created",
		slog.String("campaign", c.ID.String()),
		slog.String("owner", c.Owner.String()),
		slog.String("asset", c.Asset.String()),
		slog.Int("tiers", len(c.Tiers)),
	)
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignCreated,
		ProjectAddress: c.ID,
		Actor:          c.Owner,
		Deadline:       &c.Deadline,
	})
	return port.NewCampaignView(&c, u.now()), nil
}

func (u *CampaignUseCase) ListCampaigns(ctx context.Context) ([]port.CampaignSummary, error) {
	list, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i := range list {
		if list[i].Status == domain.StatusNew && !now.Before(list[i].Deadline) {
			list[i].Status = domain.StatusCancelled
		}
	}
	return list, nil
}

func (u *CampaignUseCase) GetCampaign(ctx context.Context, id domain.Identity) (*port.CampaignView, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return port.NewCampaignView(c, u.now()), nil
}

func (u *CampaignUseCase) Purchase(ctx context.Context, id, buyer domain.Identity, reqs []domain.TierRequest, payment domain.Payment) (*domain.PurchaseReceipt, error) {
	var receipt domain.PurchaseReceipt
	_, err := u.mutate(ctx, "purchase", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var (
			mv  domain.Movement
			err error
		)
		receipt, mv, err = c.Purchase(buyer, reqs, payment, now)
		return mv, err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("certificates purchased",
		slog.String("campaign", id.String()),
		slog.String("buyer", buyer.String()),
		slog.Int("count", len(receipt.Certificates)),
		slog.Uint64("cost", receipt.Cost),
	)
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignPurchased,
		ProjectAddress: id,
		Actor:          buyer,
		Amount:         receipt.Cost,
		Certificates:   receipt.Certificates,
	})
	return &receipt, nil
}

func (u *CampaignUseCase) Withdraw(ctx context.Context, id, caller domain.Identity) (uint64, error) {
	var amount uint64
	_, err := u.mutate(ctx, "withdraw", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var (
			mv  domain.Movement
			err error
		)
		amount, mv, err = c.Withdraw(caller, now)
		return mv, err
	})
	if err != nil {
		return 0, err
	}
	u.logger.Info("campaign funds withdrawn",
		slog.String("campaign", id.String()),
		slog.Uint64("amount", amount),
	)
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignWithdrawn,
		ProjectAddress: id,
		Actor:          caller,
		Amount:         amount,
	})
	return amount, nil
}

func (u *CampaignUseCase) Cancel(ctx context.Context, id, caller domain.Identity) error {
	_, err := u.mutate(ctx, "cancel", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		return domain.Movement{}, c.Cancel(caller, now)
	})
	if err != nil {
		return err
	}
	u.logger.Info("campaign cancelled", slog.String("campaign", id.String()))
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignCancelled,
		ProjectAddress: id,
		Actor:          caller,
	})
	return nil
}

func (u *CampaignUseCase) ExtendDeadline(ctx context.Context, id, caller domain.Identity, deadline time.Time) error {
	_, err := u.mutate(ctx, "extend_deadline", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		return domain.Movement{}, c.ExtendDeadline(caller, deadline, now)
	})
	if err != nil {
		return err
	}
	deadline = deadline.UTC()
	u.logger.Info("campaign deadline extended",
		slog.String("campaign", id.String()),
		slog.Time("deadline", deadline),
	)
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignDeadlineExtended,
		ProjectAddress: id,
		Actor:          caller,
		Deadline:       &deadline,
	})
	return nil
}

func (u *CampaignUseCase) ManualTransfer(ctx context.Context, id, caller domain.Identity, reqs []domain.TierRequest, recipient domain.Identity) ([]domain.CertificateID, error) {
	var ids []domain.CertificateID
	_, err := u.mutate(ctx, "manual_transfer", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var err error
		ids, err = c.ManualTransfer(caller, reqs, recipient, now)
		return domain.Movement{}, err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("certificates granted",
		slog.String("campaign", id.String()),
		slog.String("recipient", recipient.String()),
		slog.Int("count", len(ids)),
	)
	u.publish(ctx, domain.Event{
		Type:           domain.EventCampaignManualTransfer,
		ProjectAddress: id,
		Actor:          caller,
		Party:          recipient,
		Certificates:   ids,
	})
	return ids, nil
}

func (u *CampaignUseCase) Reclaim(ctx context.Context, id, caller domain.Identity) (*domain.RefundReceipt, error) {
	var receipt domain.RefundReceipt
	_, err := u.mutate(ctx, "reclaim", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var (
			mv  domain.Movement
			err error
		)
		receipt, mv, err = c.Reclaim(caller, now)
		return mv, err
	})
	if err != nil {
		return nil, err
	}
	if receipt.Amount > 0 {
		u.logger.Info("certificates refunded",
			slog.String("campaign", id.String()),
			slog.String("holder", caller.String()),
			slog.Uint64("amount", receipt.Amount),
		)
		u.publish(ctx, domain.Event{
			Type:           domain.EventCampaignRefunded,
			ProjectAddress: id,
			Actor:          caller,
			Amount:         receipt.Amount,
			Certificates:   receipt.Certificates,
		})
	}
	return &receipt, nil
}

func (u *CampaignUseCase) CreateDistribution(ctx context.Context, id, caller domain.Identity, amount uint64, payment domain.Payment) (*port.DistributionView, error) {
	var d domain.Distribution
	_, err := u.mutate(ctx, "create_distribution", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var (
			mv  domain.Movement
			err error
		)
		d, mv, err = c.CreateDistribution(caller, amount, payment, now)
		return mv, err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("distribution created",
		slog.String("campaign", id.String()),
		slog.Int("index", d.Index),
		slog.Uint64("amount", d.TotalAmount),
		slog.Uint64("supply_basis", d.SupplyBasis),
	)
	index := d.Index
	u.publish(ctx, domain.Event{
		Type:           domain.EventDistributionCreated,
		ProjectAddress: id,
		Actor:          caller,
		Amount:         d.TotalAmount,
		Distribution:   &index,
	})
	view := port.NewDistributionView(&d)
	return &view, nil
}

func (u *CampaignUseCase) Entitlement(ctx context.Context, id domain.Identity, index int, holder domain.Identity) (uint64, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.Entitlement(index, holder)
}

func (u *CampaignUseCase) Claim(ctx context.Context, id domain.Identity, index int, holder domain.Identity) (*domain.ClaimReceipt, error) {
	return u.claim(ctx, id, []int{index}, holder)
}

func (u *CampaignUseCase) ClaimBatch(ctx context.Context, id domain.Identity, indices []int, holder domain.Identity) (*domain.ClaimReceipt, error) {
	return u.claim(ctx, id, indices, holder)
}

func (u *CampaignUseCase) claim(ctx context.Context, id domain.Identity, indices []int, holder domain.Identity) (*domain.ClaimReceipt, error) {
	var receipt domain.ClaimReceipt
	_, err := u.mutate(ctx, "claim", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		var (
			mv  domain.Movement
			err error
		)
		receipt, mv, err = c.ClaimBatch(indices, holder, now)
		return mv, err
	})
	if err != nil {
		return nil, err
	}
	for _, line := range receipt.Lines {
		if line.Amount == 0 {
			continue
		}
		index := line.Index
		u.publish(ctx, domain.Event{
			Type:           domain.EventDistributionClaimed,
			ProjectAddress: id,
			Actor:          holder,
			Amount:         line.Amount,
			Certificates:   line.Certificates,
			Distribution:   &index,
		})
	}
	return &receipt, nil
}

func (u *CampaignUseCase) CertificatesOf(ctx context.Context, id, holder domain.Identity) ([]port.CertificateView, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	certs := c.CertificatesOf(holder)
	out := make([]port.CertificateView, 0, len(certs))
	for _, cert := range certs {
		out = append(out, port.NewCertificateView(c, cert))
	}
	return out, nil
}

func (u *CampaignUseCase) Certificate(ctx context.Context, id domain.Identity, certID domain.CertificateID) (*port.CertificateView, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	cert, err := c.Certificate(certID)
	if err != nil {
		return nil, err
	}
	view := port.NewCertificateView(c, cert)
	return &view, nil
}

func (u *CampaignUseCase) TransferCertificate(ctx context.Context, id, caller domain.Identity, certID domain.CertificateID, to domain.Identity) error {
	_, err := u.mutate(ctx, "transfer_certificate", id, func(c *domain.Campaign, now time.Time) (domain.Movement, error) {
		return domain.Movement{}, c.TransferCertificate(caller, certID, to, now)
	})
	if err != nil {
		return err
	}
	u.publish(ctx, domain.Event{
		Type:           domain.EventCertificateTransferred,
		ProjectAddress: id,
		Actor:          caller,
		Party:          to,
		Certificates:   []domain.CertificateID{certID},
	})
	return nil
}

// mutate applies op to the stored campaign. The new state is saved before
// any value moves, so a settlement that calls back into the service sees
// the committed state; if settlement fails the previous state is saved
// back over it.
func (u *CampaignUseCase) mutate(ctx context.Context, name string, id domain.Identity, op func(*domain.Campaign, time.Time) (domain.Movement, error)) (_ *domain.Campaign, err error) {
	defer u.observe(name, time.Now(), &err)

	if settling(ctx) {
		return nil, port.ErrReentrantCall
	}
	unlock, err := u.locks.Lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wait for campaign %s: %w", id, err)
	}
	defer unlock()

	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	before := c.Clone()

	mv, err := op(c, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save campaign: %w", err)
	}

	if err := u.settle(ctx, c, mv); err != nil {
		before.Version = c.Version
		if rerr := u.repo.Save(ctx, &before); rerr != nil {
			u.logger.Error("failed to restore campaign after settlement failure",
				slog.String("campaign", id.String()),
				slog.Any("error", rerr),
			)
			return nil, errors.Join(err, rerr)
		}
		u.logger.Warn("settlement failed, campaign restored",
			slog.String("campaign", id.String()),
			slog.String("operation", name),
			slog.Any("error", err),
		)
		return nil, err
	}
	if mv.Kind != domain.MovementNone && mv.Amount > 0 {
		u.metrics.ObserveMovement(mv.Kind, c.Asset, mv.Amount)
	}
	return c, nil
}

func (u *CampaignUseCase) settle(ctx context.Context, c *domain.Campaign, mv domain.Movement) error {
	if mv.Kind == domain.MovementNone {
		return nil
	}
	if mv.Kind == domain.MovementRelease && mv.Amount == 0 {
		return nil
	}
	adapter, err := u.payments.For(c.Asset)
	if err != nil {
		return err
	}
	ctx = context.WithValue(ctx, settlingKey{}, c.ID)
	switch mv.Kind {
	case domain.MovementCollect:
		return adapter.Collect(ctx, c.ID, mv.Payment, mv.Amount)
	case domain.MovementRelease:
		return adapter.Release(ctx, c.ID, mv.Party, mv.Amount)
	}
	return nil
}

func (u *CampaignUseCase) load(ctx context.Context, id domain.Identity) (*domain.Campaign, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", port.ErrCampaignNotFound, id)
	}
	return c, nil
}

func (u *CampaignUseCase) publish(ctx context.Context, e domain.Event) {
	e.ID = uuid.NewString()
	e.OccurredAt = u.now().UTC()
	if err := u.events.Publish(ctx, e); err != nil {
		u.logger.Error("failed to publish event",
			slog.String("type", string(e.Type)),
			slog.String("campaign", e.ProjectAddress.String()),
			slog.Any("error", err),
		)
	}
}

func (u *CampaignUseCase) observe(op string, started time.Time, err *error) {
	u.metrics.ObserveOperation(op, domain.CodeOf(*err), time.Since(started))
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, domain.Code, time.Duration) {}
func (nopMetrics) ObserveMovement(domain.MovementKind, domain.Asset, uint64) {}
